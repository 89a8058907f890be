package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the dedicated configuration file discovered next to the sources
const ConfigFileName = ".godscn.toml"

// TomlConfigLoader discovers and reads .godscn.toml files
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig walks up from startDir looking for .godscn.toml. Without one the
// defaults are returned. startDir may also be a file or empty (current directory).
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	path := l.FindConfigFileFromPath(startDir)
	if path == "" {
		return DefaultConfig(), nil
	}
	return l.LoadFile(path)
}

// LoadFile parses one TOML file on top of the defaults
func (l *TomlConfigLoader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return config, nil
}

// FindConfigFileFromPath returns the nearest .godscn.toml at or above path,
// or "" when none exists
func (l *TomlConfigLoader) FindConfigFileFromPath(path string) string {
	if path == "" {
		path = "."
	}
	dir, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			return ""
		}
		dir = parent
	}
}
