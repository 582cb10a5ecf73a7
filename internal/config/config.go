// Package config handles configuration loading and management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/ethpandaops/loadtest-collect/internal/report"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("parse workers must be greater than 0")
	// ErrInvalidPattern is returned for a malformed log file pattern.
	ErrInvalidPattern = errors.New("invalid log pattern")
	// ErrInvalidLogFormat is returned for an unsupported log format.
	ErrInvalidLogFormat = errors.New("log format must be 'text' or 'json'")
)

// Config holds the collector configuration
type Config struct {
	ResultDir    string
	LogPattern   string
	OutputFormat string
	ParseWorkers int
	LogLevel     string
	LogFormat    string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ResultDir:    getEnv("RESULT_DIR", ""),
		LogPattern:   getEnv("LOG_PATTERN", DefaultLogPattern),
		OutputFormat: getEnv("OUTPUT_FORMAT", DefaultOutputFormat),
		LogLevel:     getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:    getEnv("LOG_FORMAT", DefaultLogFormat),
	}

	workers, err := strconv.Atoi(getEnv("PARSE_WORKERS", strconv.Itoa(DefaultParseWorkers)))
	if err != nil {
		return nil, fmt.Errorf("invalid PARSE_WORKERS: %w", err)
	}
	cfg.ParseWorkers = workers

	return cfg, nil
}

// Validate checks the configuration for values the collector cannot run with.
func (c *Config) Validate() error {
	if c.ParseWorkers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.ParseWorkers)
	}

	if _, err := filepath.Match(c.LogPattern, ""); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidPattern, c.LogPattern, err)
	}

	if !slices.Contains(report.Formats(), c.OutputFormat) {
		return fmt.Errorf("%w: %q", report.ErrUnknownFormat, c.OutputFormat)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) String() string {
	resultDirDisplay := c.ResultDir
	if resultDirDisplay == "" {
		resultDirDisplay = "(not set)"
	}

	return fmt.Sprintf(`Current Configuration:
======================
Result Directory: %s
Log Pattern:      %s
Output Format:    %s
Parse Workers:    %d
Log Level:        %s
Log Format:       %s`,
		resultDirDisplay,
		c.LogPattern,
		c.OutputFormat,
		c.ParseWorkers,
		c.LogLevel,
		c.LogFormat,
	)
}
