// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for rulebook configuration.
	DefaultConfigDir = ".rulebook"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDBFile is the default source cache database name.
	DefaultDBFile = "rulebook.db"
	// LockFile guards the workspace while a compilation is recorded.
	LockFile = "rulebook.lock"
	// DefaultFetchTimeout bounds remote document fetches.
	DefaultFetchTimeout = 30 * time.Second
)

// Config holds workspace configuration (read-only after load).
type Config struct {
	// Sources are the rulebook document addresses compiled by default,
	// core rulebook first.
	Sources  []string       `yaml:"sources,omitempty"`
	Compiler CompilerConfig `yaml:"compiler,omitempty"`
	Fetch    FetchConfig    `yaml:"fetch,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
}

// CompilerConfig holds rule compiler settings.
type CompilerConfig struct {
	// Strict rejects unknown mechanism categories instead of warning.
	Strict bool `yaml:"strict" env:"RULEBOOK_STRICT"`
}

// FetchConfig holds settings for retrieving rulebook documents.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout,omitempty" env:"RULEBOOK_HTTP_TIMEOUT"`
	// OfflineFallback compiles from the cached copy when a fetch fails.
	OfflineFallback bool `yaml:"offline_fallback" env:"RULEBOOK_OFFLINE"`
}

// SQLiteConfig holds configuration for the SQLite source cache.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database. Relative paths are
	// resolved against the workspace; empty means .rulebook/rulebook.db.
	Path string `yaml:"path,omitempty" env:"RULEBOOK_DB_PATH"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout:         DefaultFetchTimeout,
			OfflineFallback: true,
		},
	}
}

// Load loads configuration from the .rulebook directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'rulebook init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies RULEBOOK_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = DefaultFetchTimeout
	}
	return nil
}

// ConfigDir returns the path to the .rulebook config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// LockFilePath returns the path to the workspace lock file.
func LockFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, LockFile)
}

// SQLitePath returns the source cache database path for the workspace.
func (c *Config) SQLitePath(basePath string) string {
	switch {
	case c.SQLite.Path == "":
		return filepath.Join(basePath, DefaultConfigDir, DefaultDBFile)
	case filepath.IsAbs(c.SQLite.Path):
		return c.SQLite.Path
	default:
		return filepath.Join(basePath, c.SQLite.Path)
	}
}

// Exists checks if a rulebook config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
