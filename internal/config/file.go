package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigFilename is the config file name looked up under the user
// config directory (~/.config/cutlist on Linux).
const DefaultConfigFilename = "cutlist.toml"

// LoadFile reads a TOML config file, applying its values over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := NewConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the user's config file when one exists, and plain
// defaults otherwise. A malformed file is an error; a missing one is not.
func LoadDefault() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return NewConfig(), nil
	}
	path := filepath.Join(dir, "cutlist", DefaultConfigFilename)
	if _, err := os.Stat(path); err != nil {
		return NewConfig(), nil
	}
	return LoadFile(path)
}
