// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// AppName names the default data directory.
const AppName = "taskboard"

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds settings for one run.
type Config struct {
	// DataDir holds the store file. Defaults to ~/.taskboard.
	DataDir string `env:"TASKBOARD_DATA_DIR"`

	// Backend selects the key-value medium.
	Backend string `env:"TASKBOARD_BACKEND" envDefault:"json"`

	// LogFile receives debug logs. Empty disables logging.
	LogFile string `env:"TASKBOARD_LOG_FILE"`

	// Theme overrides the detected system preference (light|dark).
	Theme string `env:"TASKBOARD_THEME"`

	// NoColor follows the no-color.org convention: any value disables colour.
	NoColor string `env:"NO_COLOR"`
}

// Load parses the environment and fills in defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendJSON
	}
	switch cfg.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown backend %q (want json, sqlite or memory)", cfg.Backend)
	}
	switch cfg.Theme {
	case "", "light", "dark":
	default:
		return nil, fmt.Errorf("unknown theme %q (want light or dark)", cfg.Theme)
	}
	return &cfg, nil
}

// Colorless reports whether output should be plain.
func (c *Config) Colorless() bool { return c.NoColor != "" }

// DefaultDataDir returns $HOME/.taskboard, or a relative directory when
// the home directory cannot be determined.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, "."+AppName)
}

// EnsureDir creates the data directory with mode 0700.
func (c *Config) EnsureDir() error {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	return nil
}

// Path joins name onto the data directory.
func (c *Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}
