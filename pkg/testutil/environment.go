package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/vacuum/pkg/dirctx"
	"github.com/arthur-debert/vacuum/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides the directory roots a profile run needs
type TestEnvironment struct {
	SourceRoot string
	TargetRoot string
	HomeDir    string
	ConfigDir  string

	Fs   afero.Fs
	Dirs paths.HostDirs
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	base := "/virtual"
	switch envType {
	case EnvMemoryOnly:
		env.Fs = afero.NewMemMapFs()
	case EnvIsolated:
		base = t.TempDir()
		env.Fs = afero.NewOsFs()
	}

	env.SourceRoot = filepath.Join(base, "source")
	env.TargetRoot = filepath.Join(base, "target")
	env.HomeDir = filepath.Join(base, "home")
	env.ConfigDir = filepath.Join(base, "home", ".config")
	env.Dirs = paths.Static{HomeDir: env.HomeDir, ConfigDir: env.ConfigDir}

	for _, dir := range []string{env.SourceRoot, env.TargetRoot, env.HomeDir, env.ConfigDir} {
		if err := env.Fs.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	return env
}

// Options returns the dirctx options wiring the environment's fs and host dirs
func (env *TestEnvironment) Options() []dirctx.Option {
	return []dirctx.Option{dirctx.WithFs(env.Fs), dirctx.WithHostDirs(env.Dirs)}
}

// Sandbox returns a mirrored context from SourceRoot into TargetRoot
func (env *TestEnvironment) Sandbox() dirctx.Mirrored {
	return dirctx.NewSandbox(env.SourceRoot, env.TargetRoot, env.Options()...)
}

// Source writes files below SourceRoot
func (env *TestEnvironment) Source(files map[string]string) {
	env.t.Helper()
	WriteTree(env.t, env.Fs, env.SourceRoot, files)
}

// Target returns the path of rel below TargetRoot
func (env *TestEnvironment) Target(rel string) string {
	return filepath.Join(env.TargetRoot, rel)
}
