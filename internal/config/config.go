// Package config contains the loader and typed model for rpncalc.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRows is the number of stack rows shown when the config does not say otherwise.
const DefaultRows = 4

// Config mirrors the structure of rpncalc.yaml.
type Config struct {
	// EnvFiles lists .env files loaded before RPNCALC_* variables are read.
	// Relative names resolve against the directory holding the config file.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"logLevel,omitempty"`
	// Display controls how the stack is rendered.
	Display DisplayConfig `yaml:"display,omitempty"`
	// Parse controls numeric input parsing.
	Parse ParseConfig `yaml:"parse,omitempty"`
	// Bindings maps key names to actions or operator tokens, on top of the built-in keys.
	Bindings map[string]string `yaml:"bindings,omitempty"`

	// Dir is the directory the config was loaded from. Empty for defaults.
	Dir string `yaml:"-"`
}

// DisplayConfig describes the stack view.
type DisplayConfig struct {
	// Rows is how many of the topmost stack values are shown.
	Rows int `yaml:"rows,omitempty"`
}

// ParseConfig describes numeric input handling.
type ParseConfig struct {
	// Strict rejects tokens with trailing characters after the number.
	Strict bool `yaml:"strict,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{Rows: DefaultRows},
	}
}

// Parse decodes YAML config bytes, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Display.Rows == 0 {
		cfg.Display.Rows = DefaultRows
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config at path. A missing file yields Default unless required is set.
func Load(path string, required bool) (*Config, error) {
	if path == "" {
		if required {
			return nil, fmt.Errorf("config path is empty")
		}
		return Default(), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %q: %w", absPath, err)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}
	cfg.Dir = filepath.Dir(absPath)
	return cfg, nil
}

// Validate checks value ranges. Binding targets are checked by the session keymap.
func (c *Config) Validate() error {
	if c.Display.Rows < 0 {
		return fmt.Errorf("display.rows must be positive, got %d", c.Display.Rows)
	}
	for key := range c.Bindings {
		if key == "" {
			return fmt.Errorf("bindings: empty key name")
		}
	}
	return nil
}
