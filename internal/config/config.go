package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the optional tool configuration
type Config struct {
	// CacheEntries bounds the parse cache; 0 means the built-in default
	CacheEntries int           `yaml:"cache_entries"`
	Summary      SummaryConfig `yaml:"summary"`
}

// SummaryConfig bounds the size of generated project summaries
type SummaryConfig struct {
	MaxSettings int `yaml:"max_settings"`
	MaxMetadata int `yaml:"max_metadata"`
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	return &Config{
		CacheEntries: 16,
		Summary: SummaryConfig{
			MaxSettings: 40,
			MaxMetadata: 8,
		},
	}
}

// Loader handles loading and validating YAML configuration files
type Loader struct{}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses a YAML configuration file. Omitted values keep
// their defaults.
func (l *Loader) Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (l *Loader) Validate(config *Config) error {
	if config.CacheEntries < 0 {
		return fmt.Errorf("cache_entries must not be negative")
	}
	if config.Summary.MaxSettings < 1 {
		return fmt.Errorf("summary.max_settings must be at least 1")
	}
	if config.Summary.MaxMetadata < 1 {
		return fmt.Errorf("summary.max_metadata must be at least 1")
	}
	return nil
}
