package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// History modes selectable in the configuration.
const (
	ModeBrowser = "browser"
	ModeHash    = "hash"
	ModeMemory  = "memory"
)

// Config holds navsurf user configuration. Values come from config.json
// and are overridden by NAVSURF_* environment variables.
type Config struct {
	Mode      string `json:"mode" env:"MODE"`
	Basename  string `json:"basename" env:"BASENAME"`
	HashType  string `json:"hash_type" env:"HASH_TYPE"`
	KeyLength int    `json:"key_length" env:"KEY_LENGTH"`
	Homepage  string `json:"homepage" env:"HOMEPAGE"`
	Theme     string `json:"theme" env:"THEME"`
	LogLevel  string `json:"log_level" env:"LOG_LEVEL"`
	LogFile   string `json:"log_file" env:"LOG_FILE"`
	path      string
}

const envPrefix = "NAVSURF_"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeBrowser,
		HashType:  "slash",
		KeyLength: 6,
		Homepage:  "/",
		Theme:     "default",
		LogLevel:  "info",
	}
}

// LoadConfig loads configuration from the standard config directory and
// applies environment overrides.
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(filepath.Join(dir, "config.json"), nil)
}

// LoadConfigFile loads configuration from path. A missing file is written
// with the defaults. environ replaces the process environment when non-nil.
func LoadConfigFile(path string, environ map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// A read-only config dir is not fatal.
		if err := cfg.Save(); err != nil {
			slog.Warn("saving default config", "path", path, "err", err)
		}
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeBrowser, ModeHash, ModeMemory:
	default:
		return fmt.Errorf("invalid mode %q (want browser, hash or memory)", c.Mode)
	}
	if c.KeyLength < 1 || c.KeyLength > 32 {
		return fmt.Errorf("invalid key length %d (want 1..32)", c.KeyLength)
	}
	return nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(c.path, data, 0o644)
}

// StateDir returns the directory for the log file.
func StateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Logs", "navsurf")
	case "windows":
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			dir = filepath.Join(appData, "navsurf")
		} else {
			dir = filepath.Join(home, ".navsurf")
		}
	default: // Linux, BSD, etc.
		if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
			dir = filepath.Join(xdgState, "navsurf")
		} else {
			dir = filepath.Join(home, ".local", "state", "navsurf")
		}
	}

	return dir, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "navsurf")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			dir = filepath.Join(appData, "navsurf")
		} else {
			dir = filepath.Join(home, ".navsurf")
		}
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			dir = filepath.Join(xdgConfig, "navsurf")
		} else {
			dir = filepath.Join(home, ".config", "navsurf")
		}
	}

	return dir, nil
}
