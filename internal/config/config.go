// Package config loads and validates hopes.yaml, the search-tuning
// configuration. No other package in this module reads a loaded Config:
// the proof engine, the CLI and the rpc service run without it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level hopes.yaml configuration.
type Config struct {
	// MaxAnswers is the configured answer limit for a search, 0 meaning
	// unbounded (pull until the stream is exhausted).
	MaxAnswers int `yaml:"max_answers,omitempty"`

	// FreshPrefix is the configured prefix for generated fresh variable
	// names. term.Fresher names each fresh symbol after the base it is
	// given and does not read this setting.
	FreshPrefix string `yaml:"fresh_prefix,omitempty"`

	// Trace is the configured switch for per-derivation-step logging.
	Trace bool `yaml:"trace,omitempty"`

	// CacheDB is the path to the sqlite answer cache (see internal/cache);
	// empty means no cache is configured.
	CacheDB string `yaml:"cache_db,omitempty"`
}

// Default returns the configuration used when no hopes.yaml is found.
func Default() *Config {
	return &Config{MaxAnswers: 0, FreshPrefix: "_G"}
}

// LoadConfig reads and parses a hopes.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses hopes.yaml content from bytes. The path argument is
// used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig searches for hopes.yaml starting from dir and walking up
// through parent directories.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range []string{"hopes.yaml", "hopes.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	if c.MaxAnswers < 0 {
		return fmt.Errorf("%s: max_answers must be >= 0", path)
	}
	if c.FreshPrefix == "" {
		return fmt.Errorf("%s: fresh_prefix must not be empty", path)
	}
	return nil
}
