// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Player  PlayerConfig  `yaml:"player"`
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig represents catalog loading configuration.
type CatalogConfig struct {
	Sources []SourceConfig `yaml:"sources" validate:"required,min=1"`
}

// SourceConfig represents a single catalog source entry.
type SourceConfig struct {
	Type     string         `yaml:"type" validate:"required"`
	Settings map[string]any `yaml:"settings"`
}

// PlayerConfig represents player configuration.
type PlayerConfig struct {
	// RandomSeed seeds random playback. Zero means time-seeded.
	RandomSeed int64 `yaml:"random_seed"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	Output string `yaml:"output" default:"stdout"`
}

// Default returns the configuration used when no config file is given:
// the builtin demo catalog and console logging.
func Default() *Config {
	cfg := &Config{
		Catalog: CatalogConfig{
			Sources: []SourceConfig{{Type: "builtin"}},
		},
	}
	_ = defaults.Set(cfg)
	return cfg
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("VIDBOX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VIDBOX_CATALOG_FILE"); v != "" {
		c.Catalog.Sources = []SourceConfig{{
			Type:     "file",
			Settings: map[string]any{"path": v},
		}}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
