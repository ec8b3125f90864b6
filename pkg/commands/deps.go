package commands

import (
	"context"

	"github.com/arthur-debert/vacuum/pkg/deps"
	"github.com/arthur-debert/vacuum/pkg/dirctx"
	"github.com/arthur-debert/vacuum/pkg/executor"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/types"
)

// DepsOptions defines the options for the Deps command.
type DepsOptions struct {
	Environment
	Profile string
	// AppDir is the application directory the profile's files are checked in.
	AppDir string
}

// DepsResult lists the dependency rules that fired.
type DepsResult struct {
	App         *types.App
	ProfilePath string
	Triggered   []deps.Triggered
}

// Deps evaluates every dependency check of a profile against AppDir and
// surfaces the triggered blocks. Nothing is copied or run.
func Deps(ctx context.Context, opts DepsOptions) (*DepsResult, error) {
	log := logging.GetLogger("commands.deps")

	env, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	appDir, err := env.directory("app-dir", opts.AppDir, true)
	if err != nil {
		return nil, err
	}

	app, path, err := env.loadProfile(opts.Profile)
	if err != nil {
		return nil, err
	}

	root := dirctx.NewPath(appDir, dirctx.WithFs(env.Fs), dirctx.WithHostDirs(env.HostDirs))
	reporter := executor.NewReporter(app, env.Fs, env.Sink)
	if _, err := executor.Execute(ctx, reporter, root, app, executor.Options{Sink: env.Sink}); err != nil {
		return nil, err
	}

	log.Debug().Str("app", app.Name).Int("triggered", len(reporter.Triggered())).Msg("Dependencies evaluated")
	return &DepsResult{App: app, ProfilePath: path, Triggered: reporter.Triggered()}, nil
}
