package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/vacuum/pkg/config"
	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/arthur-debert/vacuum/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default user config location at an empty directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VACUUM_CONFIG_DIR", dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := config.Load(config.LoadOptions{})

	require.NoError(t, err)
	assert.False(t, cfg.Grammar.WireActions)
	assert.False(t, cfg.Grammar.PathLiterals)
	assert.False(t, cfg.Execution.ContinueOnCommandError)
	assert.Equal(t, []string{"sh", "-c"}, cfg.Execution.Shell)
	assert.Empty(t, cfg.Profiles.Dirs)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, []string{filepath.Join(dir, "profiles")}, cfg.ProfileDirs())
	assert.Empty(t, cfg.ParserOptions())
}

func TestLoadUserFile(t *testing.T) {
	t.Run("default location", func(t *testing.T) {
		dir := isolate(t)
		writeConfig(t, dir, `
[grammar]
wire_actions = true
path_literals = true

[profiles]
dirs = ["/srv/profiles"]
`)

		cfg, err := config.Load(config.LoadOptions{})

		require.NoError(t, err)
		assert.True(t, cfg.Grammar.WireActions)
		assert.True(t, cfg.Grammar.PathLiterals)
		assert.Len(t, cfg.ParserOptions(), 2)
		assert.Equal(t, []string{"/srv/profiles", filepath.Join(dir, "profiles")}, cfg.ProfileDirs())
		// untouched keys keep their defaults
		assert.Equal(t, []string{"sh", "-c"}, cfg.Execution.Shell)
	})

	t.Run("explicit file", func(t *testing.T) {
		isolate(t)
		path := writeConfig(t, t.TempDir(), `
[execution]
continue_on_command_error = true
shell = ["bash", "-lc"]
`)

		cfg, err := config.Load(config.LoadOptions{ConfigFile: path})

		require.NoError(t, err)
		assert.True(t, cfg.Execution.ContinueOnCommandError)
		assert.Equal(t, []string{"bash", "-lc"}, cfg.Execution.Shell)
		assert.True(t, cfg.ExecutorOptions(ui.Discard).ContinueOnCommandError)
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		isolate(t)

		_, err := config.Load(config.LoadOptions{ConfigFile: "/nonexistent/vacuum.toml"})

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := isolate(t)
		writeConfig(t, dir, "[grammar\nwire_actions = ")

		_, err := config.Load(config.LoadOptions{})

		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestLoadEnvironment(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
[output]
format = "text"
`)
	t.Setenv("VACUUM_GRAMMAR__WIRE_ACTIONS", "true")
	t.Setenv("VACUUM_EXECUTION__SHELL", "bash,-c")
	t.Setenv("VACUUM_OUTPUT__FORMAT", "json")

	cfg, err := config.Load(config.LoadOptions{})

	require.NoError(t, err)
	assert.True(t, cfg.Grammar.WireActions)
	assert.Equal(t, []string{"bash", "-c"}, cfg.Execution.Shell)

	format, err := cfg.OutputFormat()
	require.NoError(t, err)
	assert.Equal(t, ui.FormatJSON, format)
}

func TestLoadOverridesWinOverEverything(t *testing.T) {
	isolate(t)
	t.Setenv("VACUUM_OUTPUT__FORMAT", "json")

	cfg, err := config.Load(config.LoadOptions{Overrides: map[string]interface{}{
		"output.format":        "text",
		"grammar.wire_actions": true,
	}})

	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Grammar.WireActions)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty shell", content: "[execution]\nshell = []\n"},
		{name: "unknown format", content: "[output]\nformat = \"html\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, tt.content)

			_, err := config.Load(config.LoadOptions{})

			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
		})
	}
}

func TestDefaultContent(t *testing.T) {
	assert.Contains(t, config.DefaultContent(), "[grammar]")
	assert.Contains(t, config.DefaultContent(), "wire_actions = false")
}
