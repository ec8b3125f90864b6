// Package commands implements the operations behind the CLI: backing up an
// application's files, reporting its dependency blocks and checking a
// profile. The functions take explicit options and report through a ui.Sink
// so they can run without cobra.
package commands

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/vacuum/pkg/config"
	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/paths"
	"github.com/arthur-debert/vacuum/pkg/profile"
	"github.com/arthur-debert/vacuum/pkg/types"
	"github.com/arthur-debert/vacuum/pkg/ui"
	"github.com/spf13/afero"
)

// Environment carries what every command needs. Zero fields fall back to
// the host: default configuration, OS filesystem, XDG directories and a
// discarding sink.
type Environment struct {
	Config   *config.Config
	Fs       afero.Fs
	HostDirs paths.HostDirs
	Sink     ui.Sink
}

func (e Environment) withDefaults() (Environment, error) {
	if e.Config == nil {
		cfg, err := config.Load(config.LoadOptions{})
		if err != nil {
			return e, err
		}
		e.Config = cfg
	}
	if e.Fs == nil {
		e.Fs = afero.NewOsFs()
	}
	if e.HostDirs == nil {
		e.HostDirs = paths.XDG()
	}
	if e.Sink == nil {
		e.Sink = ui.Discard
	}
	return e, nil
}

// loadProfile finds name in the configured profile directories and loads it
// with the configured grammar.
func (e Environment) loadProfile(name string) (*types.App, string, error) {
	loader := profile.NewLoader(e.Fs, e.Config.Parser())

	path, err := loader.Find(name, e.Config.ProfileDirs())
	if err != nil {
		return nil, "", err
	}
	app, err := loader.Load(path)
	if err != nil {
		return nil, path, err
	}
	return app, path, nil
}

// directory makes dir absolute and checks it exists when mustExist is set.
func (e Environment) directory(flag, dir string, mustExist bool) (string, error) {
	if dir == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "--%s is required", flag)
	}
	abs, err := filepath.Abs(paths.ExpandHome(dir))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "invalid --%s %s", flag, dir)
	}
	if !mustExist {
		return abs, nil
	}

	info, err := e.Fs.Stat(abs)
	if os.IsNotExist(err) {
		return "", errors.Newf(errors.ErrNotFound, "--%s %s does not exist", flag, abs)
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, "cannot stat %s", abs)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrInvalidInput, "--%s %s is not a directory", flag, abs)
	}
	return abs, nil
}
