// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	apperrors "github.com/namedisambig/clustereval/internal/pkg/errors"
)

// Config holds all application configuration.
type Config struct {
	// Evaluation configuration
	Eval EvalConfig `yaml:"eval"`

	// Diagnostic configuration
	Inspect InspectConfig `yaml:"inspect"`

	// Output configuration
	Output OutputConfig `yaml:"output"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// EvalConfig holds scoring settings.
type EvalConfig struct {
	Workers  int  `envconfig:"CLUSTEREVAL_WORKERS" yaml:"workers"`
	Strict   bool `envconfig:"CLUSTEREVAL_STRICT" yaml:"strict"` // skip groups with duplicated items
	MinItems int  `envconfig:"CLUSTEREVAL_MIN_ITEMS" yaml:"min_items"`
}

// InspectConfig holds settings for the format diagnostic.
type InspectConfig struct {
	MaxGroups  int `envconfig:"CLUSTEREVAL_INSPECT_MAX_GROUPS" yaml:"max_groups"`
	SampleSize int `envconfig:"CLUSTEREVAL_INSPECT_SAMPLE_SIZE" yaml:"sample_size"`
}

// OutputConfig holds result rendering settings.
type OutputConfig struct {
	Format string `envconfig:"CLUSTEREVAL_OUTPUT_FORMAT" yaml:"format"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"CLUSTEREVAL_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"CLUSTEREVAL_LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from environment variables and optional config file.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Set defaults first
	setDefaults(cfg)

	// Load from YAML file if provided (overrides defaults)
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// Override with environment variables (highest priority)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("processing env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func setDefaults(cfg *Config) {
	cfg.Eval = EvalConfig{
		Workers:  4,
		Strict:   false,
		MinItems: 1,
	}

	cfg.Inspect = InspectConfig{
		MaxGroups:  3,
		SampleSize: 2,
	}

	cfg.Output = OutputConfig{
		Format: "text",
	}

	cfg.Log = LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.Eval.Workers < 1 {
		errs = append(errs, "workers must be positive")
	}

	if c.Eval.MinItems < 1 {
		errs = append(errs, "min_items must be at least 1")
	}

	if c.Inspect.MaxGroups < 1 {
		errs = append(errs, "inspect max_groups must be positive")
	}

	if c.Inspect.SampleSize < 0 {
		errs = append(errs, "inspect sample_size must not be negative")
	}

	validOutputs := map[string]bool{"text": true, "json": true}
	if !validOutputs[c.Output.Format] {
		errs = append(errs, fmt.Sprintf("invalid output format: %s (must be text or json)", c.Output.Format))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("invalid log format: %s (must be text or json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return apperrors.ValidationError(fmt.Sprintf("config validation failed:\n  - %s", strings.Join(errs, "\n  - ")))
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.Log.Level == "debug"
}
