package vacuum_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/vacuum/cmd/vacuum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps config lookups and the log file inside the test
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("VACUUM_CONFIG_DIR", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := vacuum.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNoCommand(t *testing.T) {
	isolate(t)

	_, _, err := run(t)

	assert.EqualError(t, err, "no command specified")
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "vacuum version dev")
}

func TestCheck(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	profile := filepath.Join(dir, "demo.vac")
	writeFile(t, profile, `app "demo" { copy "conf" }`)

	t.Run("default grammar validates but does not wire", func(t *testing.T) {
		out, _, err := run(t, "check", profile)

		require.NoError(t, err)
		assert.Contains(t, out, "demo ("+profile+")")
		assert.Contains(t, out, "not wired")
	})

	t.Run("wired through the environment", func(t *testing.T) {
		t.Setenv("VACUUM_GRAMMAR__WIRE_ACTIONS", "true")
		t.Setenv("VACUUM_GRAMMAR__PATH_LITERALS", "true")

		out, _, err := run(t, "check", profile)

		require.NoError(t, err)
		assert.Contains(t, out, `copy "conf"`)
		assert.NotContains(t, out, "not wired")
	})

	t.Run("parse error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.vac")
		writeFile(t, bad, `app "demo`)

		_, _, err := run(t, "check", bad)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "PARSE")
	})
}

func TestBackup(t *testing.T) {
	isolate(t)
	t.Setenv("VACUUM_GRAMMAR__WIRE_ACTIONS", "true")
	t.Setenv("VACUUM_GRAMMAR__PATH_LITERALS", "true")

	root := t.TempDir()
	source := filepath.Join(root, "source")
	target := filepath.Join(root, "target")
	profile := filepath.Join(root, "demo.vac")
	writeFile(t, filepath.Join(source, "conf.json"), `{"k":1}`)
	writeFile(t, profile, `app "demo" { copy "conf.json" }`)

	t.Run("dry run", func(t *testing.T) {
		out, _, err := run(t, "backup", profile, "--source", source, "--target", target, "--dry-run", "--format", "text")

		require.NoError(t, err)
		assert.Contains(t, out, "would copy")
		assert.Contains(t, out, "DRY RUN")
		assert.NoFileExists(t, filepath.Join(target, "conf.json"))
	})

	t.Run("copies", func(t *testing.T) {
		out, _, err := run(t, "backup", profile, "--source", source, "--target", target, "--format", "text")

		require.NoError(t, err)
		assert.Contains(t, out, "copy "+filepath.Join(source, "conf.json")+" -> "+filepath.Join(target, "conf.json"))
		assert.Contains(t, out, "Applied 1 action(s) of demo")

		data, err := os.ReadFile(filepath.Join(target, "conf.json"))
		require.NoError(t, err)
		assert.Equal(t, `{"k":1}`, string(data))
	})

	t.Run("requires source and target", func(t *testing.T) {
		_, _, err := run(t, "backup", profile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "required flag")
	})
}

func TestBackupRunsCommands(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("commands are run through sh")
	}
	isolate(t)
	t.Setenv("VACUUM_GRAMMAR__WIRE_ACTIONS", "true")

	root := t.TempDir()
	source := filepath.Join(root, "source")
	require.NoError(t, os.MkdirAll(source, 0755))
	profile := filepath.Join(root, "greet.vac")
	writeFile(t, profile, `app "greet" { exec "pwd" }`)

	out, _, err := run(t, "backup", profile, "--source", source, "--target", filepath.Join(root, "target"), "--format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, source+"\n")
}

func TestDeps(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	appDir := filepath.Join(root, "app")
	profile := filepath.Join(root, "python.toml")
	writeFile(t, filepath.Join(appDir, "requirements.txt"), "torch\n")
	writeFile(t, profile, `
name = "python"

[dependencies]
pip = "Install with pip"

[[actions]]
copy = "requirements.txt"
checks = [{ rule = "pip", contains = "torch" }]
`)

	out, _, err := run(t, "deps", profile, "--app-dir", appDir, "--format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "[pip] Install with pip")

	writeFile(t, filepath.Join(appDir, "requirements.txt"), "numpy\n")
	out, _, err = run(t, "deps", profile, "--app-dir", appDir, "--format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "No dependency rule fired for python.")
}

func TestCompletionAndMan(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "vacuum")

	dir := t.TempDir()
	_, _, err = run(t, "man", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "vacuum-backup.1"))
}

func TestHelpTopics(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "profiles")
	assert.Contains(t, out, "scopes")
	assert.Contains(t, out, "--dry-run")

	out, _, err = run(t, "help", "scopes")
	require.NoError(t, err)
	assert.Contains(t, out, "config/nvim/init.vim")

	out, _, err = run(t, "help", "dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would")

	out, _, err = run(t, "help", "backup")
	require.NoError(t, err)
	assert.Contains(t, out, "--source")
}
