// Package types defines the profile data model: an App with its dependency
// table and ordered actions, the Action variants (exec, copy, copy_glob) and
// the DependencyCheck variants (exists, contains).
package types
