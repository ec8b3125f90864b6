// Package errors provides the coded error type used across vacuum. Every
// failure a caller may act on carries an ErrorCode; details collected while
// the error travels up are merged along the wrap chain.
package errors

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Profile errors
	ErrParse          ErrorCode = "PARSE"
	ErrProfileInvalid ErrorCode = "PROFILE_INVALID"

	// Execution errors
	ErrPathResolution ErrorCode = "PATH_RESOLUTION"
	ErrIO             ErrorCode = "IO"
	ErrCommand        ErrorCode = "COMMAND"
)

// VacuumError is an error with a code, a message and structured details
type VacuumError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func newError(code ErrorCode, wrapped error, message string) *VacuumError {
	return &VacuumError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

// New creates an error with the given code and message
func New(code ErrorCode, message string) *VacuumError {
	return newError(code, nil, message)
}

// Newf creates an error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VacuumError {
	return newError(code, nil, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to err. Wrapping nil yields nil.
func Wrap(err error, code ErrorCode, message string) *VacuumError {
	if err == nil {
		return nil
	}
	return newError(code, err, message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VacuumError {
	if err == nil {
		return nil
	}
	return newError(code, err, fmt.Sprintf(format, args...))
}

func (e *VacuumError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
}

func (e *VacuumError) Unwrap() error {
	return e.Wrapped
}

// Is matches any VacuumError with the same code, so errors.Is(err,
// New(ErrIO, "")) tests for an IO failure anywhere in the chain.
func (e *VacuumError) Is(target error) bool {
	t, ok := target.(*VacuumError)
	return ok && t.Code == e.Code
}

// WithDetail sets one detail and returns e for chaining
func (e *VacuumError) WithDetail(key string, value interface{}) *VacuumError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails sets several details at once
func (e *VacuumError) WithDetails(details map[string]interface{}) *VacuumError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// MarshalZerologObject logs the code, the message and the details in key
// order.
func (e *VacuumError) MarshalZerologObject(ev *zerolog.Event) {
	ev.Str("code", string(e.Code)).Str("message", e.Message)
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ev.Interface(k, e.Details[k])
	}
	if e.Wrapped != nil {
		ev.Str("cause", e.Wrapped.Error())
	}
}

// chain lists the VacuumErrors reachable from err, outermost first
func chain(err error) []*VacuumError {
	var found []*VacuumError
	for err != nil {
		var vErr *VacuumError
		if !errors.As(err, &vErr) {
			break
		}
		found = append(found, vErr)
		err = vErr.Wrapped
	}
	return found
}

// IsErrorCode reports whether the outermost VacuumError carries code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// HasErrorCode reports whether any VacuumError in the chain carries code
func HasErrorCode(err error, code ErrorCode) bool {
	for _, vErr := range chain(err) {
		if vErr.Code == code {
			return true
		}
	}
	return false
}

// GetErrorCode returns the outermost code, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	if c := chain(err); len(c) > 0 {
		return c[0].Code
	}
	return ErrUnknown
}

// GetErrorDetails merges the details of every VacuumError in the chain.
// Outer errors win on conflicting keys. It returns nil when err carries no
// VacuumError.
func GetErrorDetails(err error) map[string]interface{} {
	c := chain(err)
	if len(c) == 0 {
		return nil
	}
	merged := make(map[string]interface{})
	for i := len(c) - 1; i >= 0; i-- {
		for k, v := range c[i].Details {
			merged[k] = v
		}
	}
	return merged
}
