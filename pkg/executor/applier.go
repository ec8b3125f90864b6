package executor

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/vacuum/pkg/deps"
	"github.com/arthur-debert/vacuum/pkg/dirctx"
	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/ops"
	"github.com/arthur-debert/vacuum/pkg/types"
	"github.com/arthur-debert/vacuum/pkg/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ApplierOptions contains configuration for an Applier
type ApplierOptions struct {
	Fs     afero.Fs
	Sink   ui.Sink
	Shell  []string
	DryRun bool
}

// Applier evaluates dependency checks and then performs each action.
// In dry-run mode it reports what it would do without writing or spawning.
type Applier struct {
	fs       afero.Fs
	sink     ui.Sink
	ops      *ops.Ops
	analyzer *deps.Analyzer
	dryRun   bool
	logger   zerolog.Logger
}

// NewApplier creates an Applier for app.
func NewApplier(app *types.App, opts ApplierOptions) *Applier {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	sink := opts.Sink
	if sink == nil {
		sink = ui.Discard
	}

	return &Applier{
		fs:       fs,
		sink:     sink,
		ops:      ops.New(ops.WithFs(fs), ops.WithSink(sink), ops.WithShell(opts.Shell)),
		analyzer: deps.New(app, deps.WithFs(fs), deps.WithSink(sink)),
		dryRun:   opts.DryRun,
		logger:   logging.GetLogger("applier"),
	}
}

func (a *Applier) HandleFile(dc dirctx.Context, fileName string, checks []types.DependencyCheck) error {
	if _, err := a.analyzer.AnalyzeIn(dc, fileName, checks); err != nil {
		return err
	}

	if !a.dryRun {
		return a.ops.Copy(dc, fileName)
	}

	file := dc.Sub(fileName)
	if _, err := a.fs.Stat(file.Source()); err != nil {
		if os.IsNotExist(err) {
			a.sink.Emit(ui.Event{Kind: ui.EventSkip, Source: file.Source(), Reason: "missing"})
			return nil
		}
		return errors.Wrapf(err, errors.ErrIO, "cannot stat %s", file.Source())
	}
	a.wouldCopy(file)
	return nil
}

func (a *Applier) HandleGlob(dc dirctx.Context, pattern string) error {
	if !a.dryRun {
		return a.ops.CopyGlob(dc, pattern)
	}

	matches, err := dc.Search(pattern)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if match, ok := m.Context(); ok {
			a.wouldCopy(match)
		}
	}
	return nil
}

func (a *Applier) HandleExecute(ctx context.Context, dc dirctx.Context, command, workDir string) error {
	if workDir != "" {
		dc = dc.Sub(workDir)
	}

	if a.dryRun {
		a.sink.Emit(ui.Event{
			Kind:    ui.EventDryRun,
			Command: command,
			Dir:     dc.Source(),
			Reason:  fmt.Sprintf("exec %q in %s", command, dc.Source()),
		})
		return nil
	}
	return a.ops.Execute(ctx, dc, command)
}

func (a *Applier) wouldCopy(file dirctx.Context) {
	a.logger.Debug().Str("source", file.Source()).Str("target", file.Target()).Msg("Dry run copy")
	a.sink.Emit(ui.Event{
		Kind:   ui.EventDryRun,
		Source: file.Source(),
		Target: file.Target(),
		Reason: fmt.Sprintf("copy %s -> %s", file.Source(), file.Target()),
	})
}
