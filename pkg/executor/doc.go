// Package executor drives a parsed profile against a root context.
//
// Execute walks the application's actions strictly in order, resolves each
// action's scope and sub-directory against the root context, and hands the
// resolved context to a Handler. Two handlers are provided: the Applier,
// which evaluates dependency checks and then copies or runs commands, and the
// Reporter, which only evaluates dependency checks.
package executor
