// Package dirctx provides Context, a location in two parallel directory
// trees: a source tree that is read and searched, and a target tree that is
// written. Every descent moves both coordinates together, so a sub-path of
// the source always has the same sub-path in the target.
//
// Path is the direct variant where source and target coincide. Mirrored
// pairs two inner Contexts and delegates to both in lock-step; resolving the
// host home or config directory on a Mirrored context reads from the real
// host directory but writes below a "home" or "config" segment of the target
// instead of the real one.
//
// Contexts are immutable values holding paths only. No file handle outlives
// a single call.
package dirctx
