// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gold-calc/core/types"
	"gold-calc/internal/errors"
	"gold-calc/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Rates contains default rates used when a flag is omitted
	Rates RatesConfig `json:"rates" yaml:"rates"`

	// Session contains session snapshot configuration
	Session SessionConfig `json:"session" yaml:"session"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json, markdown)
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// Language selects the number-to-words vocabulary
	Language types.Language `json:"language" yaml:"language"`

	// ShowWords appends the amount in words to totals
	ShowWords bool `json:"show_words" yaml:"show_words"`
}

// RatesConfig contains default rates
type RatesConfig struct {
	// Default24k is the 24k rate per gram used when none is given; 0 means required
	Default24k float64 `json:"default_24k" yaml:"default_24k"`

	// AddedMetalPurity is the purity of the metal added when enriching an alloy
	AddedMetalPurity float64 `json:"added_metal_purity" yaml:"added_metal_purity"`
}

// SessionConfig contains session snapshot settings
type SessionConfig struct {
	// Enabled keeps the last inputs between CLI invocations
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the snapshot file
	Path string `json:"path" yaml:"path"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	sessionPath := filepath.Join(homeDir, ".gold-calc", "session.json")

	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "cli",
			Language:      types.LanguageEnglish,
			ShowWords:     true,
		},
		Rates: RatesConfig{
			AddedMetalPurity: 100,
		},
		Session: SessionConfig{
			Enabled: true,
			Path:    sessionPath,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a JSON or YAML file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.TypeConfig, "failed to read config", err)
	}

	config := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to parse %s", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the configuration to path, as YAML when the extension asks for it
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.TypeConfig, "failed to create config directory", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.Wrap(errors.TypeConfig, "failed to encode config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.TypeConfig, err, "failed to write %s", path)
	}
	return nil
}

// Validate checks values that would otherwise fail deep inside a command
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case "cli", "json", "markdown":
	default:
		return errors.Newf(errors.TypeConfig, "unknown output format %q", c.Output.DefaultFormat)
	}
	if !c.Output.Language.IsValid() {
		return errors.Newf(errors.TypeConfig, "unknown language %q", c.Output.Language)
	}
	if c.Rates.Default24k < 0 {
		return errors.New(errors.TypeConfig, "rates.default_24k must not be negative")
	}
	if c.Rates.AddedMetalPurity <= 0 || c.Rates.AddedMetalPurity > 100 {
		return errors.New(errors.TypeConfig, "rates.added_metal_purity must be in (0,100]")
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
