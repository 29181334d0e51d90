// Package paths resolves configuration and data directory locations.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".scorg"
	DefaultDataDirName   = ".scorg-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SCORG_CONFIG_DIR"
	EnvDataDir   = "SCORG_DATA_DIR"
)

// appName names the per-user platform directories.
const appName = "scorg"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// Dirs is a resolved pair of configuration and data directories.
type Dirs struct {
	Config string
	Data   string
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/scorg (fallback ~/.config/scorg)
// macOS:   ~/Library/Application Support/scorg
// Windows: %APPDATA%/scorg
func DefaultConfigDir() (string, error) {
	return platformDefault("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/scorg (fallback ~/.local/share/scorg)
// macOS and Windows: same as DefaultConfigDir.
func DefaultDataDir() (string, error) {
	return platformDefault("XDG_DATA_HOME", ".local", "share")
}

// platformDefault follows the XDG variable xdgVar on Linux, falling back to
// ~/<homeRel...>/scorg. Other platforms use os.UserConfigDir.
func platformDefault(xdgVar string, homeRel ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeRel...)
	return filepath.Join(append(parts, appName)...), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SCORG_CONFIG_DIR env > $(CWD)/.scorg.
//
// The working-directory default keeps a class's configuration beside its
// data; DefaultConfigDir is offered for callers that want a per-user one.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(flag, os.Getenv(EnvConfigDir), DefaultConfigDirName)
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > SCORG_DATA_DIR env > $(CWD)/.scorg-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	return firstAbs(flag, configYAMLValue, os.Getenv(EnvDataDir), DefaultDataDirName)
}

// Resolve resolves both directories. dataFromConfig is called with the
// resolved config directory to read its data_dir setting; it may be nil.
func Resolve(configFlag, dataFlag string, dataFromConfig func(configDir string) (string, error)) (Dirs, error) {
	configDir, err := ResolveConfigDir(configFlag)
	if err != nil {
		return Dirs{}, fmt.Errorf("resolve config dir: %w", err)
	}
	var configured string
	if dataFromConfig != nil {
		configured, err = dataFromConfig(configDir)
		if err != nil {
			return Dirs{}, err
		}
	}
	dataDir, err := ResolveDataDir(dataFlag, configured)
	if err != nil {
		return Dirs{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return Dirs{Config: configDir, Data: dataDir}, nil
}

// Ensure creates both directories if they do not exist.
func (d Dirs) Ensure() error {
	for _, dir := range []string{d.Config, d.Data} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// firstAbs returns the first non-empty candidate as an absolute path.
func firstAbs(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return "", fmt.Errorf("no directory candidate")
}
