package executor

import (
	"context"

	"github.com/arthur-debert/vacuum/pkg/deps"
	"github.com/arthur-debert/vacuum/pkg/dirctx"
	"github.com/arthur-debert/vacuum/pkg/types"
	"github.com/arthur-debert/vacuum/pkg/ui"
	"github.com/spf13/afero"
)

// Reporter only evaluates dependency checks. It never copies or runs
// anything.
type Reporter struct {
	analyzer  *deps.Analyzer
	triggered []deps.Triggered
}

// NewReporter creates a Reporter for app reading from fs.
func NewReporter(app *types.App, fs afero.Fs, sink ui.Sink) *Reporter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if sink == nil {
		sink = ui.Discard
	}
	return &Reporter{analyzer: deps.New(app, deps.WithFs(fs), deps.WithSink(sink))}
}

func (r *Reporter) HandleFile(dc dirctx.Context, fileName string, checks []types.DependencyCheck) error {
	triggered, err := r.analyzer.AnalyzeIn(dc, fileName, checks)
	if err != nil {
		return err
	}
	r.triggered = append(r.triggered, triggered...)
	return nil
}

func (r *Reporter) HandleGlob(dirctx.Context, string) error { return nil }

func (r *Reporter) HandleExecute(context.Context, dirctx.Context, string, string) error { return nil }

// Triggered returns every rule that fired, in order.
func (r *Reporter) Triggered() []deps.Triggered {
	return append([]deps.Triggered(nil), r.triggered...)
}
