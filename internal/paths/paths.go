// Package paths resolves where wardrobe keeps its configuration, its
// database, and any catalog file named in config.yaml.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under platform base directories.
const AppName = "wardrobe"

// CWD-relative directory name used when no data dir override is active.
const DefaultDataDirName = ".wardrobe-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "WARDROBE_CONFIG_DIR"
	EnvDataDir   = "WARDROBE_DATA_DIR"
)

// platform holds platform-detection functions that tests override.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $xdgVar/wardrobe, falling back to ~/<fallback...>/wardrobe
// on Linux and the user config dir elsewhere.
func xdgDir(xdgVar string, fallback ...string) (string, error) {
	if platform.goos != "linux" {
		dir, err := platform.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/wardrobe (fallback ~/.config/wardrobe)
// macOS:   ~/Library/Application Support/wardrobe
// Windows: %APPDATA%/wardrobe
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific data directory. It is used
// by init to suggest a location; ResolveDataDir prefers the CWD default.
//
// Linux:   $XDG_DATA_HOME/wardrobe (fallback ~/.local/share/wardrobe)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir applies flag > WARDROBE_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir applies flag > config.yaml data_dir > WARDROBE_DATA_DIR >
// $(CWD)/.wardrobe-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	for _, v := range []string{flag, configYAMLValue, os.Getenv(EnvDataDir)} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolveCatalog returns the catalog file path from config.yaml. Relative
// paths are taken relative to configDir. An empty value means the built-in
// catalog and yields "".
func ResolveCatalog(configDir, value string) string {
	if value == "" {
		return ""
	}
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(configDir, value)
}
