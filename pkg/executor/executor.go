package executor

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/arthur-debert/vacuum/pkg/dirctx"
	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/types"
	"github.com/arthur-debert/vacuum/pkg/ui"
)

// Handler receives each action of a profile with its context resolved.
type Handler interface {
	// HandleFile is called for a copy action before anything is copied.
	HandleFile(dc dirctx.Context, fileName string, checks []types.DependencyCheck) error
	// HandleGlob is called for a copy_glob action.
	HandleGlob(dc dirctx.Context, pattern string) error
	// HandleExecute is called for an exec action. workDir is relative to
	// dc's source and empty when the action does not override it.
	HandleExecute(ctx context.Context, dc dirctx.Context, command, workDir string) error
}

// Options contains configuration for Execute
type Options struct {
	// ContinueOnCommandError keeps going after a failed exec action. The
	// failures are still returned once every action has run. Copy failures
	// always stop the run.
	ContinueOnCommandError bool
	// Sink receives a failure event for every failed action.
	Sink ui.Sink
}

// Result records how one action went.
type Result struct {
	Index    int
	Action   types.Action
	Success  bool
	Error    error
	Duration time.Duration
}

// Execute runs every action of app in declared order against root. It stops
// at the first failure unless the failure is a command error and
// opts.ContinueOnCommandError is set. The returned results cover every
// action that was attempted.
func Execute(ctx context.Context, h Handler, root dirctx.Context, app *types.App, opts Options) ([]Result, error) {
	logger := logging.GetLogger("executor").With().Str("app", app.Name).Logger()
	sink := opts.Sink
	if sink == nil {
		sink = ui.Discard
	}

	results := make([]Result, 0, len(app.Actions))
	var failed []error

	for i, action := range app.Actions {
		if err := ctx.Err(); err != nil {
			return results, errors.Wrap(err, errors.ErrCommand, "run interrupted").WithDetail("index", i)
		}

		start := time.Now()
		logger.Debug().Int("index", i).Str("action", action.String()).Msg("Executing action")

		dc, err := run(ctx, h, root, action)
		result := Result{Index: i, Action: action, Success: err == nil, Duration: time.Since(start)}
		if err == nil {
			results = append(results, result)
			continue
		}

		failure := describe(err, i, action, dc)
		result.Error = failure
		results = append(results, result)
		sink.Emit(ui.Event{Kind: ui.EventFailure, App: app.Name, Reason: failure.Error()})

		if action.Kind == types.ActionExecute && opts.ContinueOnCommandError && errors.HasErrorCode(err, errors.ErrCommand) {
			logger.Warn().Object("failure", failure).Msg("Command failed, continuing")
			failed = append(failed, failure)
			continue
		}

		logger.Error().Object("failure", failure).Msg("Action failed")
		return results, failure
	}

	if len(failed) > 0 {
		return results, errors.Wrapf(stderrors.Join(failed...), errors.ErrCommand, "%d command(s) failed", len(failed)).
			WithDetail("failed", len(failed))
	}
	return results, nil
}

func run(ctx context.Context, h Handler, root dirctx.Context, action types.Action) (dirctx.Context, error) {
	if err := action.Valid(); err != nil {
		return nil, errors.Wrap(err, errors.ErrProfileInvalid, "invalid action")
	}

	dc, err := Resolve(root, action)
	if err != nil {
		return nil, err
	}

	switch action.Kind {
	case types.ActionCopy:
		return dc, h.HandleFile(dc, action.Value, action.Checks)
	case types.ActionCopyGlob:
		return dc, h.HandleGlob(dc, action.Value)
	default:
		return dc, h.HandleExecute(ctx, dc, action.Value, action.WorkDir)
	}
}

// Resolve applies the action's scope and sub-directory to root.
func Resolve(root dirctx.Context, action types.Action) (dirctx.Context, error) {
	dc := root
	var err error

	switch action.Scope {
	case types.ScopeHome:
		dc, err = root.Home()
	case types.ScopeConfig:
		dc, err = root.Config()
	}
	if err != nil {
		return nil, err
	}

	if action.Dir != "" {
		dc = dc.Sub(action.Dir)
	}
	return dc, nil
}

// describe wraps err with the failing action, keeping the inner code.
func describe(err error, index int, action types.Action, dc dirctx.Context) *errors.VacuumError {
	wrapped := errors.Wrap(err, errors.GetErrorCode(err), fmt.Sprintf("action %d (%s) failed", index+1, action)).
		WithDetail("index", index).
		WithDetail("kind", string(action.Kind))
	switch {
	case dc == nil:
	case action.Kind == types.ActionExecute:
		wrapped.WithDetail("path", dc.Source())
	default:
		wrapped.WithDetail("path", dc.Sub(action.Value).Source())
	}
	return wrapped
}
