// Package config loads the optional config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/xolan/nutritrack/internal/osutil"
	"github.com/xolan/nutritrack/internal/storage"
	"github.com/xolan/nutritrack/internal/timeutil"
)

// ConfigFile is the name of the TOML configuration file
const ConfigFile = "config.toml"

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "dracula"

// Config represents the application configuration
type Config struct {
	// Theme is the bubbletint theme ID used by the TUI
	Theme string `toml:"theme"`
	// StorageBackend selects where the food log is kept: "file" or "sqlite"
	StorageBackend string `toml:"storage_backend"`
	// Timezone is used to display timestamps and group entries by day (IANA name or "Local")
	Timezone string `toml:"timezone"`
	// DataDir overrides the directory holding the food log
	DataDir string `toml:"data_dir"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Theme:          DefaultTheme,
		StorageBackend: storage.BackendFile,
		Timezone:       "Local",
		DataDir:        "",
	}
}

// GetConfigPath returns the path to config.toml in the app directory,
// creating the directory if needed.
func GetConfigPath() (string, error) {
	dir, err := osutil.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Load reads, normalizes and validates the config at path.
// Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields DefaultConfig.
// Any other failure is returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to access config file: %w", err)
	}
	return Load(path)
}

// Normalize trims values, lower-cases the backend and fills empty keys
// with their defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()

	c.Theme = strings.TrimSpace(c.Theme)
	if c.Theme == "" {
		c.Theme = def.Theme
	}

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	if c.StorageBackend == "" {
		c.StorageBackend = def.StorageBackend
	}

	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}

	c.DataDir = strings.TrimSpace(c.DataDir)
}

// Validate checks the backend and timezone. Call Normalize first.
func (c Config) Validate() error {
	if !slices.Contains(storage.Backends(), c.StorageBackend) {
		return fmt.Errorf("invalid storage_backend %q (valid: %s)", c.StorageBackend, strings.Join(storage.Backends(), ", "))
	}
	if _, err := timeutil.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	return nil
}

// Save writes c to path as TOML.
func (c Config) Save(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return file.Close()
}

// GenerateSampleConfig returns a commented config.toml for `nutri config --init`.
func GenerateSampleConfig() string {
	return `# nutritrack configuration file
# Every setting is optional; remove the leading "# " to change a value.

# TUI color theme (any bubbletint theme ID, e.g. dracula, nord, gruvbox_dark)
# theme = "dracula"

# Where the food log is stored: "file" (food-entries.json) or "sqlite" (nutritrack.db)
# storage_backend = "file"

# Timezone used to show timestamps and group entries by day
# Use "Local" for the system timezone or an IANA name such as
# "America/New_York", "Europe/London" or "Asia/Tokyo"
# timezone = "Local"

# Directory for the food log (defaults to this config directory)
# data_dir = ""
`
}
