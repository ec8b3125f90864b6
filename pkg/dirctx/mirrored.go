package dirctx

import (
	"path/filepath"

	"github.com/arthur-debert/vacuum/pkg/errors"
)

// Mirrored pairs a source Context with a target Context. Reads and matching
// use the source; writes go to the target.
type Mirrored struct {
	source Context
	target Context
}

var _ Context = Mirrored{}

// NewMirrored pairs source and target.
func NewMirrored(source, target Context) Mirrored {
	return Mirrored{source: source, target: target}
}

// NewSandbox mirrors the real directory sourceRoot into targetRoot.
func NewSandbox(sourceRoot, targetRoot string, opts ...Option) Mirrored {
	return NewMirrored(NewPath(sourceRoot, opts...), NewPath(targetRoot, opts...))
}

func (m Mirrored) Source() string { return m.source.Source() }

func (m Mirrored) Target() string { return m.target.Target() }

// Home resolves the real home directory for reading and namespaces the
// target under a "home" segment.
func (m Mirrored) Home() (Context, error) {
	source, err := m.source.Home()
	if err != nil {
		return nil, err
	}
	return Mirrored{source: source, target: m.target.Sub(HomeSegment)}, nil
}

// Config resolves the real config directory for reading and namespaces the
// target under a "config" segment.
func (m Mirrored) Config() (Context, error) {
	source, err := m.source.Config()
	if err != nil {
		return nil, err
	}
	return Mirrored{source: source, target: m.target.Sub(ConfigSegment)}, nil
}

func (m Mirrored) Sub(name string) Context {
	return Mirrored{source: m.source.Sub(name), target: m.target.Sub(name)}
}

// Search matches against the source and reparents every resolved match
// under the target at the same relative position.
func (m Mirrored) Search(pattern string) ([]Match, error) {
	found, err := m.source.Search(pattern)
	if err != nil {
		return nil, err
	}
	root := m.source.Source()
	matches := make([]Match, len(found))
	for i, match := range found {
		source, ok := match.Context()
		if !ok {
			matches[i] = match
			continue
		}
		rel, err := filepath.Rel(root, source.Source())
		if err != nil {
			matches[i] = Unresolved(match.Path(), errors.Wrapf(err, errors.ErrIO, "match %s is outside %s", match.Path(), root))
			continue
		}
		matches[i] = Matched(Mirrored{source: source, target: m.target.Sub(rel)})
	}
	return matches, nil
}
