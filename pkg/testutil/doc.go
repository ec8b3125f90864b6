// Package testutil provides utilities for testing vacuum components.
//
// Key components:
//   - TestEnvironment: source, target, home and config roots with isolation and cleanup
//   - WriteTree / ReadFile: declarative file setup and inspection over afero
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; it runs on an afero MemMapFs
//   - Use EnvIsolated when a test spawns processes or needs real permissions
//   - All test data should be defined inline, not in external files
package testutil
