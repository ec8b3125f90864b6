package dirctx

// Namespace segments appended to the target when resolving host directories.
const (
	HomeSegment   = "home"
	ConfigSegment = "config"
)

// Context is a paired (source, target) location.
type Context interface {
	// Source is the directory reads and glob matching happen in.
	Source() string
	// Target is the directory writes go to.
	Target() string

	// Home resolves the host home directory.
	Home() (Context, error)
	// Config resolves the host configuration directory.
	Config() (Context, error)
	// Sub appends name to both coordinates. It does no I/O.
	Sub(name string) Context
	// Search expands pattern against Source. The result keeps one entry per
	// match attempt, including the ones that could not be resolved.
	Search(pattern string) ([]Match, error)
}

// Match is one entry of a Search result: either a resolved Context or an
// unresolved slot holding the path and the reason it could not be read.
type Match struct {
	ctx  Context
	path string
	err  error
}

// Matched wraps a resolved match.
func Matched(ctx Context) Match {
	return Match{ctx: ctx, path: ctx.Source()}
}

// Unresolved records a match attempt that could not be read.
func Unresolved(path string, err error) Match {
	return Match{path: path, err: err}
}

// Context returns the resolved context and whether the match was resolved.
func (m Match) Context() (Context, bool) {
	return m.ctx, m.ctx != nil
}

// Resolved reports whether the match carries a Context.
func (m Match) Resolved() bool {
	return m.ctx != nil
}

// Path is the source path of the match attempt.
func (m Match) Path() string {
	return m.path
}

// Err is the reason an unresolved match could not be read.
func (m Match) Err() error {
	return m.err
}

// ResolvedOnly drops the unresolved slots. Callers that need positional
// alignment with the Search result must not use it.
func ResolvedOnly(matches []Match) []Context {
	out := make([]Context, 0, len(matches))
	for _, m := range matches {
		if ctx, ok := m.Context(); ok {
			out = append(out, ctx)
		}
	}
	return out
}
