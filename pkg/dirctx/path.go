package dirctx

import (
	"path/filepath"

	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/paths"
	"github.com/spf13/afero"
)

// Option configures a Path.
type Option func(*Path)

// WithFs sets the filesystem searched by the context.
func WithFs(fs afero.Fs) Option {
	return func(p *Path) { p.fs = fs }
}

// WithHostDirs sets how the host home and config directories are resolved.
func WithHostDirs(dirs paths.HostDirs) Option {
	return func(p *Path) { p.dirs = dirs }
}

// Path is a Context over one real directory; its source and target coincide.
type Path struct {
	root string
	fs   afero.Fs
	dirs paths.HostDirs
}

var _ Context = Path{}

// NewPath creates a Path rooted at root, made absolute.
func NewPath(root string, opts ...Option) Path {
	p := Path{
		root: absolute(root),
		fs:   afero.NewOsFs(),
		dirs: paths.XDG(),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func absolute(root string) string {
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return filepath.Clean(root)
}

func (p Path) at(root string) Path {
	p.root = root
	return p
}

func (p Path) Source() string { return p.root }

func (p Path) Target() string { return p.root }

func (p Path) Home() (Context, error) {
	home, err := p.dirs.Home()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPathResolution, "home directory unavailable")
	}
	return p.at(absolute(home)), nil
}

func (p Path) Config() (Context, error) {
	config, err := p.dirs.Config()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPathResolution, "config directory unavailable")
	}
	return p.at(absolute(config)), nil
}

func (p Path) Sub(name string) Context {
	return p.at(filepath.Join(p.root, name))
}

func (p Path) Search(pattern string) ([]Match, error) {
	hits, err := expand(p.fs, p.root, pattern)
	if err != nil {
		return nil, err
	}
	matches := make([]Match, len(hits))
	for i, h := range hits {
		if h.err != nil {
			matches[i] = Unresolved(h.path, h.err)
			continue
		}
		matches[i] = Matched(p.at(h.path))
	}
	return matches, nil
}
