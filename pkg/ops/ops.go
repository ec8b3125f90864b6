// Package ops performs the three profile actions against a resolved
// dirctx.Context: copying a file, copying every match of a glob pattern and
// running a command. Reads happen below the context's source; writes only
// ever happen below its target.
package ops

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/arthur-debert/vacuum/pkg/dirctx"
	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/logging"
	"github.com/arthur-debert/vacuum/pkg/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Option configures Ops.
type Option func(*Ops)

// WithFs sets the filesystem files are copied on. Commands always run on
// the host.
func WithFs(fs afero.Fs) Option {
	return func(o *Ops) { o.fs = fs }
}

// WithSink sets where copy and exec traces and command output go.
func WithSink(sink ui.Sink) Option {
	return func(o *Ops) { o.sink = sink }
}

// WithShell sets the argv prefix commands are run with, e.g. ["sh", "-c"].
func WithShell(shell []string) Option {
	return func(o *Ops) {
		if len(shell) > 0 {
			o.shell = append([]string(nil), shell...)
		}
	}
}

// Ops executes actions.
type Ops struct {
	fs     afero.Fs
	sink   ui.Sink
	shell  []string
	logger zerolog.Logger
}

// New creates Ops on the host filesystem with a discarding sink.
func New(opts ...Option) *Ops {
	o := &Ops{
		fs:     afero.NewOsFs(),
		sink:   ui.Discard,
		shell:  DefaultShell(),
		logger: logging.GetLogger("ops"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// DefaultShell is the platform shell used to run commands.
func DefaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"sh", "-c"}
}

// Copy copies source/fileName to target/fileName, creating missing target
// directories and overwriting an existing file. A missing source is skipped
// without error. Directories are copied recursively. A fileName resolving
// outside the source or the target is rejected.
func (o *Ops) Copy(dc dirctx.Context, fileName string) error {
	file := dc.Sub(fileName)
	from, to := file.Source(), file.Target()
	if !inside(dc.Source(), from) || !inside(dc.Target(), to) {
		return errors.Newf(errors.ErrInvalidInput, "%s leaves %s", fileName, dc.Target()).
			WithDetail("file", fileName)
	}

	info, err := o.fs.Stat(from)
	if os.IsNotExist(err) {
		o.logger.Debug().Str("source", from).Msg("Source missing, nothing to copy")
		o.sink.Emit(ui.Event{Kind: ui.EventSkip, Source: from, Reason: "missing"})
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot stat %s", from).WithDetail("source", from)
	}

	return o.copyEntry(from, to, info)
}

// CopyGlob copies every match of pattern below the source to the same
// relative position below the target. Unresolved matches are skipped.
func (o *Ops) CopyGlob(dc dirctx.Context, pattern string) error {
	matches, err := dc.Search(pattern)
	if err != nil {
		return err
	}

	unresolved := 0
	for _, m := range matches {
		if !m.Resolved() {
			unresolved++
		}
	}
	o.sink.Emit(ui.Event{
		Kind:       ui.EventGlob,
		Pattern:    pattern,
		Source:     dc.Source(),
		Matched:    len(matches) - unresolved,
		Unresolved: unresolved,
	})

	var copiedDirs []string
	for _, m := range matches {
		match, ok := m.Context()
		if !ok {
			o.logger.Warn().Err(m.Err()).Str("path", m.Path()).Msg("Skipping unresolved glob match")
			o.sink.Emit(ui.Event{Kind: ui.EventSkip, Source: m.Path(), Reason: "unresolved"})
			continue
		}

		from, to := match.Source(), match.Target()
		if within(copiedDirs, from) {
			continue
		}

		info, err := o.fs.Stat(from)
		if os.IsNotExist(err) {
			o.sink.Emit(ui.Event{Kind: ui.EventSkip, Source: from, Reason: "vanished"})
			continue
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot stat %s", from).WithDetail("pattern", pattern)
		}

		if err := o.copyEntry(from, to, info); err != nil {
			return err
		}
		if info.IsDir() {
			copiedDirs = append(copiedDirs, from)
		}
	}
	return nil
}

// inside reports whether path is root or below it.
func inside(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func within(dirs []string, path string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (o *Ops) copyEntry(from, to string, info os.FileInfo) error {
	if from == to {
		// Path contexts read and write the same tree
		o.sink.Emit(ui.Event{Kind: ui.EventSkip, Source: from, Reason: "source and target coincide"})
		return nil
	}

	done := logging.LogOperationStart(o.logger.With().Str("source", from).Str("target", to).Logger(), "copy")
	defer done()

	var err error
	if info.IsDir() {
		err = o.copyTree(from, to)
	} else {
		err = o.copyFile(from, to, info.Mode().Perm())
	}
	if err != nil {
		return err
	}
	o.sink.Emit(ui.Event{Kind: ui.EventCopy, Source: from, Target: to})
	return nil
}

func (o *Ops) copyTree(from, to string) error {
	return afero.Walk(o.fs, from, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot read %s", path)
		}
		rel, err := filepath.Rel(from, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot relativize %s", path)
		}
		dst := filepath.Join(to, rel)

		switch {
		case info.IsDir():
			if err := o.fs.MkdirAll(dst, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrIO, "cannot create directory %s", dst)
			}
		case info.Mode().IsRegular():
			if err := o.copyFile(path, dst, info.Mode().Perm()); err != nil {
				return err
			}
		case info.Mode()&os.ModeSymlink != 0:
			if err := o.copyLink(path, dst); err != nil {
				return err
			}
		default:
			o.logger.Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("Skipping special file")
		}
		return nil
	})
}

// copyLink copies the file a symlink points to. Links to directories and
// dangling links are recreated as links, or skipped when the filesystem
// cannot hold symlinks.
func (o *Ops) copyLink(from, to string) error {
	if target, err := o.fs.Stat(from); err == nil && target.Mode().IsRegular() {
		return o.copyFile(from, to, target.Mode().Perm())
	}

	linker, ok := o.fs.(afero.Symlinker)
	if !ok {
		o.logger.Debug().Str("path", from).Msg("Filesystem has no symlinks, skipping link")
		o.sink.Emit(ui.Event{Kind: ui.EventSkip, Source: from, Reason: "symlink"})
		return nil
	}

	dest, err := linker.ReadlinkIfPossible(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot read link %s", from)
	}
	if err := o.fs.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create directory %s", filepath.Dir(to))
	}
	if info, err := linker.LstatIfPossible(to); err == nil && !info.IsDir() {
		if err := o.fs.Remove(to); err != nil {
			return errors.Wrapf(err, errors.ErrIO, "cannot replace %s", to)
		}
	}
	if err := linker.SymlinkIfPossible(dest, to); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot link %s to %s", to, dest)
	}
	return nil
}

// copyFile copies byte-for-byte. Both handles are closed before it returns.
func (o *Ops) copyFile(from, to string, perm os.FileMode) (err error) {
	if err := o.fs.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create directory %s", filepath.Dir(to))
	}

	in, err := o.fs.Open(from)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot open %s", from)
	}
	defer func() { _ = in.Close() }()

	if perm == 0 {
		perm = 0644
	}
	out, err := o.fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot create %s", to)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, errors.ErrIO, "cannot close %s", to)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, errors.ErrIO, "cannot copy %s to %s", from, to)
	}
	return nil
}
