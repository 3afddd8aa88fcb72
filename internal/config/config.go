// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the environment variable prefix for all settings.
const envPrefix = "STASHMCP"

// Default configuration values.
const (
	DefaultLogLevel     = "INFO"
	DefaultLogFormat    = "text"
	DefaultDiffMaxLines = 2000
	DefaultDiffMaxFiles = 50
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config holds environment-based configuration. Field names map to
// environment variables under the STASHMCP_ prefix.
type Config struct {
	// LogLevel is the log verbosity level (DEBUG, INFO, WARN, ERROR).
	// Env: STASHMCP_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (text or json).
	// Env: STASHMCP_LOG_FORMAT (default: text)
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// DiffMaxLines caps the rendered diff line count per tool call.
	// Env: STASHMCP_DIFF_MAX_LINES (default: 2000)
	DiffMaxLines int `envconfig:"DIFF_MAX_LINES" default:"2000"`

	// DiffMaxFiles caps the rendered diff file count per tool call.
	// Env: STASHMCP_DIFF_MAX_FILES (default: 50)
	DiffMaxFiles int `envconfig:"DIFF_MAX_FILES" default:"50"`
}

// Load reads configuration from a .env file (optional) and environment
// variables, environment taking precedence. A missing .env file is not an
// error.
func Load(envPath string) (Config, error) {
	if err := loadDotEnv(envPath); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv loads environment variables from a .env file. An empty path
// means ".env" in the current directory; a file that does not exist is
// silently skipped.
func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Validate checks enumerations and value ranges.
func (c Config) Validate() error {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("invalid log level %q (expected DEBUG, INFO, WARN, or ERROR)", c.LogLevel)
	}

	switch LogFormat(strings.ToLower(c.LogFormat)) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q (expected text or json)", c.LogFormat)
	}

	if c.DiffMaxLines <= 0 {
		return fmt.Errorf("diff max lines must be positive, got %d", c.DiffMaxLines)
	}
	if c.DiffMaxFiles <= 0 {
		return fmt.Errorf("diff max files must be positive, got %d", c.DiffMaxFiles)
	}
	return nil
}
