package paths

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/vacuum/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticHostDirs(t *testing.T) {
	dirs := Static{HomeDir: "/home/alice", ConfigDir: "/home/alice/.config"}

	home, err := dirs.Home()
	require.NoError(t, err)
	assert.Equal(t, "/home/alice", home)

	config, err := dirs.Config()
	require.NoError(t, err)
	assert.Equal(t, "/home/alice/.config", config)
}

func TestStaticHostDirsUnavailable(t *testing.T) {
	dirs := Static{}

	_, err := dirs.Home()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolution))

	_, err = dirs.Config()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolution))
}

func TestXDGHostDirs(t *testing.T) {
	home := t.TempDir()
	config := filepath.Join(home, "cfg")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", config)
	Reload()
	t.Cleanup(Reload)

	got, err := XDG().Home()
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = XDG().Config()
	require.NoError(t, err)
	assert.Equal(t, config, got)
}

func TestConfigDir(t *testing.T) {
	t.Run("env_override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/etc/vacuum")
		assert.Equal(t, "/etc/vacuum", ConfigDir())
		assert.Equal(t, "/etc/vacuum/config.toml", ConfigFilePath())
		assert.Equal(t, []string{"/etc/vacuum/profiles"}, DefaultProfileDirs())
	})

	t.Run("xdg_default", func(t *testing.T) {
		config := t.TempDir()
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", config)
		Reload()
		t.Cleanup(Reload)

		assert.Equal(t, filepath.Join(config, "vacuum"), ConfigDir())
	})
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	Reload()
	t.Cleanup(Reload)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/profiles", filepath.Join(home, "profiles")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"~bob/x", "~bob/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
