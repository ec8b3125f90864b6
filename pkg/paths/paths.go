package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/vacuum/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for vacuum
	EnvConfigDir = "VACUUM_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside vacuum's config directory
const (
	AppDirName     = "vacuum"
	ConfigFileName = "config.toml"
	ProfilesDir    = "profiles"
)

// HostDirs resolves the host's home and configuration directories.
type HostDirs interface {
	Home() (string, error)
	Config() (string, error)
}

type xdgDirs struct{}

// XDG returns HostDirs backed by the XDG Base Directory lookups.
func XDG() HostDirs {
	return xdgDirs{}
}

func (xdgDirs) Home() (string, error) {
	if xdg.Home != "" {
		return xdg.Home, nil
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	return "", errors.New(errors.ErrPathResolution, "host has no home directory")
}

func (xdgDirs) Config() (string, error) {
	if xdg.ConfigHome != "" {
		return xdg.ConfigHome, nil
	}
	return "", errors.New(errors.ErrPathResolution, "host has no configuration directory")
}

// Static is a HostDirs with fixed directories. An empty field means the host
// has no such directory.
type Static struct {
	HomeDir   string
	ConfigDir string
}

func (s Static) Home() (string, error) {
	if s.HomeDir == "" {
		return "", errors.New(errors.ErrPathResolution, "host has no home directory")
	}
	return s.HomeDir, nil
}

func (s Static) Config() (string, error) {
	if s.ConfigDir == "" {
		return "", errors.New(errors.ErrPathResolution, "host has no configuration directory")
	}
	return s.ConfigDir, nil
}

// Reload re-reads the XDG environment. Tests call it after changing HOME or
// XDG_* variables.
func Reload() {
	xdg.Reload()
}

// ConfigDir is vacuum's own configuration directory.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath is the default user configuration file.
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// DefaultProfileDirs lists the directories searched for profiles when the
// configuration names none.
func DefaultProfileDirs() []string {
	return []string{filepath.Join(ConfigDir(), ProfilesDir)}
}

// ExpandHome expands a leading ~ to the user's home directory. Paths it
// cannot expand are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := XDG().Home()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not expanded
	return path
}
