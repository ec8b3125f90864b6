package errors_test

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "profile not found",
			wantStr: "[NOT_FOUND] profile not found",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "invalid scope",
			wantStr: "[INVALID_INPUT] invalid scope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		format  string
		args    []interface{}
		wantMsg string
	}{
		{
			name:    "format_with_string",
			code:    errors.ErrInvalidInput,
			format:  "invalid value: %s",
			args:    []interface{}{"test"},
			wantMsg: "invalid value: test",
		},
		{
			name:    "format_with_multiple_args",
			code:    errors.ErrIO,
			format:  "cannot copy %s with mode %o",
			args:    []interface{}{"file.txt", 0644},
			wantMsg: "cannot copy file.txt with mode 644",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.Newf(tt.code, tt.format, tt.args...)

			if err.Message != tt.wantMsg {
				t.Errorf("Newf() message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Code != errors.ErrInternal {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInternal)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "not found").
		WithDetail("path", "/test/path").
		WithDetail("type", "file")

	if err.Details["path"] != "/test/path" {
		t.Errorf("WithDetail() path = %v, want %v", err.Details["path"], "/test/path")
	}

	if err.Details["type"] != "file" {
		t.Errorf("WithDetail() type = %v, want %v", err.Details["type"], "file")
	}
}

func TestWithDetails(t *testing.T) {
	details := map[string]interface{}{
		"path": "/test/path",
		"mode": 0644,
		"size": 1024,
	}

	err := errors.New(errors.ErrIO, "cannot copy file").
		WithDetails(details)

	for k, v := range details {
		if err.Details[k] != v {
			t.Errorf("WithDetails() %s = %v, want %v", k, err.Details[k], v)
		}
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	t.Run("same_code_is_equal", func(t *testing.T) {
		if !err1.Is(err2) {
			t.Error("Is() should return true for same code")
		}
	})

	t.Run("different_code_not_equal", func(t *testing.T) {
		if err1.Is(err3) {
			t.Error("Is() should return false for different codes")
		}
	})

	t.Run("works_with_errors_Is", func(t *testing.T) {
		if !stderrors.Is(err1, err2) {
			t.Error("errors.Is() should work with VacuumError")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrNotFound,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNotFound, "not found"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrIO, "denied"),
			code:     errors.ErrIO,
			expected: true,
		},
		{
			name:     "non_vacuum_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrNotFound,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected errors.ErrorCode
	}{
		{
			name:     "vacuum_error",
			err:      errors.New(errors.ErrPathResolution, "no home directory"),
			expected: errors.ErrPathResolution,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			expected: errors.ErrUnknown,
		},
		{
			name:     "nil_error",
			err:      nil,
			expected: errors.ErrUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.GetErrorCode(tt.err); got != tt.expected {
				t.Errorf("GetErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	// Create a chain of errors
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrIO, "cannot read profile")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	t.Run("top_level_has_correct_code", func(t *testing.T) {
		if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
			t.Error("Top level should have ErrConfigLoad code")
		}
	})

	t.Run("can_find_middle_error", func(t *testing.T) {
		var vErr *errors.VacuumError
		if stderrors.As(configErr.Unwrap(), &vErr) {
			if !errors.IsErrorCode(vErr, errors.ErrIO) {
				t.Error("Middle error should have ErrIO code")
			}
		}
	})

	t.Run("can_find_root_cause", func(t *testing.T) {
		if !stderrors.Is(configErr, rootCause) {
			t.Error("Should find root cause with errors.Is")
		}
	})
}

func TestHasErrorCode(t *testing.T) {
	ioErr := errors.Wrap(stderrors.New("permission denied"), errors.ErrIO, "copy failed")
	actionErr := errors.Wrap(ioErr, errors.ErrInternal, "action 2 failed")

	if !errors.HasErrorCode(actionErr, errors.ErrIO) {
		t.Error("HasErrorCode() should find a code deeper in the chain")
	}
	if errors.IsErrorCode(actionErr, errors.ErrIO) {
		t.Error("IsErrorCode() should only look at the outermost code")
	}
	if errors.HasErrorCode(actionErr, errors.ErrCommand) {
		t.Error("HasErrorCode() should not report an absent code")
	}
	if errors.HasErrorCode(nil, errors.ErrIO) {
		t.Error("HasErrorCode(nil) should be false")
	}
}

func TestGetErrorDetailsMergesChain(t *testing.T) {
	inner := errors.New(errors.ErrCommand, "exit 3").
		WithDetail("exit_code", 3).
		WithDetail("dir", "/src")
	outer := errors.Wrap(inner, errors.ErrCommand, "action 2 failed").
		WithDetail("index", 1).
		WithDetail("dir", "/src/build")

	details := errors.GetErrorDetails(outer)

	if details["exit_code"] != 3 {
		t.Errorf("GetErrorDetails() exit_code = %v, want 3", details["exit_code"])
	}
	if details["index"] != 1 {
		t.Errorf("GetErrorDetails() index = %v, want 1", details["index"])
	}
	if details["dir"] != "/src/build" {
		t.Errorf("GetErrorDetails() dir = %v, want the outer value", details["dir"])
	}
	if _, ok := inner.Details["index"]; ok {
		t.Error("GetErrorDetails() must not write into the wrapped error")
	}
	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("GetErrorDetails() should be nil without a VacuumError")
	}
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	err := errors.Wrap(stderrors.New("permission denied"), errors.ErrIO, "cannot copy").
		WithDetail("source", "/src/a")

	logger.Error().Object("failure", err).Msg("failed")

	var entry struct {
		Failure map[string]interface{} `json:"failure"`
	}
	if jerr := json.Unmarshal(buf.Bytes(), &entry); jerr != nil {
		t.Fatalf("log line is not JSON: %v", jerr)
	}
	want := map[string]interface{}{
		"code":    "IO",
		"message": "cannot copy",
		"source":  "/src/a",
		"cause":   "permission denied",
	}
	for k, v := range want {
		if entry.Failure[k] != v {
			t.Errorf("failure[%s] = %v, want %v", k, entry.Failure[k], v)
		}
	}
}
