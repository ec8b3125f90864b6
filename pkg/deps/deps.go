// Package deps evaluates dependency checks against candidate files and
// surfaces the block text of every rule that fires.
package deps

import (
	"os"
	"strings"

	"github.com/arthur-debert/vacuum/pkg/dirctx"
	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/types"
	"github.com/arthur-debert/vacuum/pkg/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Triggered is a rule that fired for a file.
type Triggered struct {
	Rule  string
	Block string
	// Check is the first check that fired the rule.
	Check types.DependencyCheck
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFs sets the filesystem candidate files are read from.
func WithFs(fs afero.Fs) Option {
	return func(a *Analyzer) { a.fs = fs }
}

// WithSink sets where triggered blocks are surfaced.
func WithSink(sink ui.Sink) Option {
	return func(a *Analyzer) { a.sink = sink }
}

// Analyzer evaluates checks against one application's dependency table.
type Analyzer struct {
	app    string
	table  map[string]string
	fs     afero.Fs
	sink   ui.Sink
	logger zerolog.Logger
}

// New creates an Analyzer over a snapshot of app's dependency table.
func New(app *types.App, opts ...Option) *Analyzer {
	a := &Analyzer{
		app:    app.Name,
		table:  app.DependencyTable(),
		fs:     afero.NewOsFs(),
		sink:   ui.Discard,
		logger: logging.GetLogger("deps"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeIn evaluates checks against fileName below the context's source.
func (a *Analyzer) AnalyzeIn(dc dirctx.Context, fileName string, checks []types.DependencyCheck) ([]Triggered, error) {
	return a.Analyze(dc.Sub(fileName).Source(), checks)
}

// Analyze evaluates every check against path and surfaces each triggered
// block once, in the order its rule first fired. A missing path triggers
// nothing.
func (a *Analyzer) Analyze(path string, checks []types.DependencyCheck) ([]Triggered, error) {
	if len(checks) == 0 {
		return nil, nil
	}

	info, err := a.fs.Stat(path)
	if os.IsNotExist(err) {
		a.logger.Trace().Str("path", path).Msg("Candidate missing, no rule fires")
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot stat %s", path).WithDetail("path", path)
	}

	file := &candidate{fs: a.fs, path: path, info: info}
	var triggered []Triggered
	seen := make(map[string]bool, len(checks))

	for _, check := range checks {
		block, known := a.table[check.Rule]
		if !known {
			a.logger.Debug().Str("rule", check.Rule).Str("app", a.app).Msg("Check names an unknown rule")
			continue
		}
		if seen[check.Rule] {
			continue
		}

		fired, err := a.evaluate(check, file)
		if err != nil {
			return nil, err
		}
		if !fired {
			continue
		}

		seen[check.Rule] = true
		triggered = append(triggered, Triggered{Rule: check.Rule, Block: block, Check: check})
	}

	for _, t := range triggered {
		a.logger.Debug().Str("rule", t.Rule).Str("path", path).Msg("Dependency rule fired")
		a.sink.Emit(ui.Event{Kind: ui.EventBlock, App: a.app, Rule: t.Rule, Text: t.Block, Source: path})
	}
	return triggered, nil
}

func (a *Analyzer) evaluate(check types.DependencyCheck, file *candidate) (bool, error) {
	switch check.Kind {
	case types.CheckExists:
		return true, nil
	case types.CheckContains:
		if file.info.IsDir() {
			return false, nil
		}
		text, err := file.text()
		if err != nil {
			return false, err
		}
		return strings.Contains(text, check.Needle), nil
	default:
		return false, errors.Newf(errors.ErrInvalidInput, "unknown check kind %q", check.Kind)
	}
}

// candidate reads its content at most once.
type candidate struct {
	fs      afero.Fs
	path    string
	info    os.FileInfo
	content *string
}

func (c *candidate) text() (string, error) {
	if c.content != nil {
		return *c.content, nil
	}
	data, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "cannot read %s", c.path).WithDetail("path", c.path)
	}
	s := string(data)
	c.content = &s
	return s, nil
}
