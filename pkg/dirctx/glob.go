package dirctx

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// hit is one match attempt: a path below the search root, or a path that
// could not be read while expanding the pattern.
type hit struct {
	path string
	err  error
}

// expand walks root in lexical order and returns every path whose position
// relative to root matches pattern. '*' and '?' stay within one path
// segment, '**' crosses segments. The full list is built before returning.
func expand(fs afero.Fs, root, pattern string) ([]hit, error) {
	if pattern == "" {
		return nil, errors.New(errors.ErrIO, "empty glob pattern")
	}
	pattern = filepath.ToSlash(pattern)
	if path.IsAbs(pattern) || filepath.IsAbs(pattern) {
		return nil, errors.Newf(errors.ErrIO, "glob pattern %q must be relative", pattern)
	}
	pattern = path.Clean(pattern)

	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "invalid glob pattern %q", pattern)
	}

	maxDepth := -1
	if !strings.Contains(pattern, "**") {
		maxDepth = strings.Count(pattern, "/") + 1
	}

	logger := logging.GetLogger("dirctx")
	var hits []hit
	walkErr := afero.Walk(fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			if p == root && info == nil {
				// missing root: nothing matches
				return nil
			}
			logger.Debug().Err(err).Str("path", p).Msg("Unreadable path while expanding glob")
			hits = append(hits, hit{path: p, err: errors.Wrapf(err, errors.ErrIO, "cannot read %s", p)})
			return nil
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			hits = append(hits, hit{path: p, err: errors.Wrapf(err, errors.ErrIO, "cannot relativize %s", p)})
			return nil
		}
		rel = filepath.ToSlash(rel)

		if g.Match(rel) {
			hits = append(hits, hit{path: p})
		}
		if info.IsDir() && maxDepth >= 0 && strings.Count(rel, "/")+1 >= maxDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(walkErr, errors.ErrIO, "failed to expand %q in %s", pattern, root)
	}

	logger.Trace().
		Str("root", root).
		Str("pattern", pattern).
		Int("matches", len(hits)).
		Msg("Glob expanded")
	return hits, nil
}
