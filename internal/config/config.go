// Package config provides configuration management for lshtml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/creativesands/language-tools/internal/view"
	"github.com/creativesands/language-tools/pkg/html"
)

// Config holds the lshtml configuration.
type Config struct {
	// Delimiters is the expression delimiter pair, e.g. "{}" or "[]".
	Delimiters   string `yaml:"delimiters,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
	Jobs         int    `yaml:"jobs,omitempty"`
	Verbose      bool   `yaml:"verbose,omitempty"`
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if _, err := html.OracleFor(c.Delimiters); err != nil {
		return fmt.Errorf("invalid delimiters: %w", err)
	}
	if c.Jobs < 0 {
		return errors.New("jobs must not be negative")
	}
	if err := view.ValidateFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("invalid output_format: %w", err)
	}
	return nil
}

// Oracle returns the expression-boundary oracle for the configured
// delimiters.
func (c *Config) Oracle() (html.Oracle, error) {
	return html.OracleFor(c.Delimiters)
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() error {
	if delims := os.Getenv("LSHTML_DELIMITERS"); delims != "" {
		c.Delimiters = delims
	}
	if format := os.Getenv("LSHTML_OUTPUT"); format != "" {
		c.OutputFormat = format
	}
	if jobs := os.Getenv("LSHTML_JOBS"); jobs != "" {
		n, err := strconv.Atoi(jobs)
		if err != nil {
			return fmt.Errorf("invalid LSHTML_JOBS %q: must be a number", jobs)
		}
		c.Jobs = n
	}
	return nil
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "lshtml", "config.yml")
	}

	// Fall back to ~/.config/lshtml/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".lshtml", "config.yml")
	}

	return filepath.Join(home, ".config", "lshtml", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file yields an empty config; any other read or parse
// error is returned.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
