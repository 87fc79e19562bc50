package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Rulebook-Core Configuration

# Rulebook documents compiled by default, core rulebook first.
# Entries may be file paths or http(s) URLs.
sources: []

compiler:
  # Reject unknown mechanism categories instead of warning (or set RULEBOOK_STRICT)
  strict: false

fetch:
  timeout: 30s
  # Compile from the cached copy when a source cannot be fetched (or set RULEBOOK_OFFLINE)
  offline_fallback: true

# sqlite:
#   path: .rulebook/rulebook.db (or set RULEBOOK_DB_PATH)
`

// WriteDefault creates the .rulebook directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := ConfigFilePath(basePath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
