package commands

import (
	"context"

	"github.com/arthur-debert/vacuum/pkg/dirctx"
	"github.com/arthur-debert/vacuum/pkg/executor"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/types"
)

// BackupOptions defines the options for the Backup command.
type BackupOptions struct {
	Environment
	// Profile is a profile name or a path to a profile file.
	Profile string
	// Source is the tree the profile's relative paths are read from.
	Source string
	// Target receives the copies. home and config scoped actions land in
	// its home/ and config/ subdirectories.
	Target string
	// DryRun reports what would happen without copying or running anything.
	DryRun bool
}

// BackupResult is the outcome of a backup run.
type BackupResult struct {
	App         *types.App
	ProfilePath string
	Source      string
	Target      string
	DryRun      bool
	Results     []executor.Result
}

// Unwired reports whether the profile's action block was parsed but not
// returned, so nothing was applied.
func (r *BackupResult) Unwired() bool {
	return r.App.UnwiredActions > 0
}

// Backup applies a profile from Source into Target.
func Backup(ctx context.Context, opts BackupOptions) (*BackupResult, error) {
	log := logging.GetLogger("commands.backup")

	env, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	source, err := env.directory("source", opts.Source, true)
	if err != nil {
		return nil, err
	}
	target, err := env.directory("target", opts.Target, false)
	if err != nil {
		return nil, err
	}

	app, path, err := env.loadProfile(opts.Profile)
	if err != nil {
		return nil, err
	}

	result := &BackupResult{
		App:         app,
		ProfilePath: path,
		Source:      source,
		Target:      target,
		DryRun:      opts.DryRun,
	}
	if result.Unwired() {
		log.Warn().Str("profile", path).Int("unwired", app.UnwiredActions).Msg("Profile actions are not wired")
		return result, nil
	}

	log.Info().
		Str("app", app.Name).
		Str("source", source).
		Str("target", target).
		Bool("dry_run", opts.DryRun).
		Int("actions", len(app.Actions)).
		Msg("Starting backup")

	root := dirctx.NewSandbox(source, target, dirctx.WithFs(env.Fs), dirctx.WithHostDirs(env.HostDirs))
	applier := executor.NewApplier(app, executor.ApplierOptions{
		Fs:     env.Fs,
		Sink:   env.Sink,
		Shell:  env.Config.Execution.Shell,
		DryRun: opts.DryRun,
	})

	result.Results, err = executor.Execute(ctx, applier, root, app, env.Config.ExecutorOptions(env.Sink))
	return result, err
}
