package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/platform"
	"github.com/darkawower/astra/internal/state"
)

// Environment overrides for the computed directories.
const (
	EnvConfigDir = "ASTRA_CONFIG_DIR"
	EnvDataDir   = "ASTRA_DATA_DIR"
)

// Dirs are the per-user application directories.
type Dirs struct {
	Config string
	Data   string
}

// DefaultDirs returns the OS-conventional directories for the running
// platform, honoring ASTRA_CONFIG_DIR and ASTRA_DATA_DIR.
func DefaultDirs() (Dirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dirs{}, apperr.Wrap(apperr.OS, fmt.Errorf("failed to get home directory: %w", err))
	}
	return dirsFor(runtime.GOOS, home, os.Getenv), nil
}

func dirsFor(goos, home string, getenv func(string) string) Dirs {
	envOr := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	var d Dirs
	switch goos {
	case "darwin":
		base := filepath.Join(home, "Library", "Application Support", platform.LaunchdLabel())
		d = Dirs{Config: base, Data: base}
	case "windows":
		base := filepath.Join(envOr("APPDATA", filepath.Join(home, "AppData", "Roaming")), platform.Organization, platform.Application)
		d = Dirs{Config: filepath.Join(base, "config"), Data: filepath.Join(base, "data")}
	default:
		d = Dirs{
			Config: filepath.Join(envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config")), "astra"),
			Data:   filepath.Join(envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share")), "astra"),
		}
	}

	d.Config = envOr(EnvConfigDir, d.Config)
	d.Data = envOr(EnvDataDir, d.Data)
	return d
}

// ConfigFile is the path of config.json.
func (d Dirs) ConfigFile() string {
	return filepath.Join(d.Config, FileName)
}

// StateFile is the path of the last-run file.
func (d Dirs) StateFile() string {
	return filepath.Join(d.Data, state.FileName)
}
