// Package config provides application configuration with multi-source
// priority.
//
// Configuration sources (highest to lowest priority):
//  1. Command-line flags (applied by the cmd package after Load)
//  2. Environment variables (LOCALSTORE_* prefix)
//  3. Config file (./config.yaml or ~/.localstore/config.yaml)
//  4. Default values
//
// Error Handling: sentinel errors for Go-idiomatic checking with errors.Is,
// wrapped with context using fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidLogLevel indicates a log level outside DEBUG/INFO/WARNING/ERROR.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidPath indicates an unusable sandbox root path.
	ErrInvalidPath = errors.New("invalid sandbox path")
)

// Defaults.
const (
	DefaultPath     = "./data"
	DefaultLogLevel = "INFO"
)

// validLogLevels mirrors the CLI surface: --log-level {DEBUG,INFO,WARNING,ERROR}.
var validLogLevels = map[string]bool{
	"DEBUG":   true,
	"INFO":    true,
	"WARNING": true,
	"ERROR":   true,
}

// Config stores application configuration.
type Config struct {
	// Path is the sandbox root directory for all file operations.
	Path string `mapstructure:"path"`

	// LogLevel is one of DEBUG, INFO, WARNING, ERROR.
	LogLevel string `mapstructure:"log_level"`

	// MetricsAddr is the optional listen address for the Prometheus
	// endpoint. Empty disables metrics serving.
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Load loads configuration from file, environment and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".localstore"))
	}

	v.SetDefault("path", DefaultPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("metrics_addr", "")

	v.SetEnvPrefix("LOCALSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is not an error; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration, failing fast with sentinel errors.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}
	if !validLogLevels[strings.ToUpper(c.LogLevel)] {
		return fmt.Errorf("%w: %q (want DEBUG, INFO, WARNING or ERROR)", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}
