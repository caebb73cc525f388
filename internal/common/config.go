// Package common provides shared utilities for the micro-cap tracker.
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the tracker.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Sheets      SheetsConfig  `toml:"sheets"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds the data directory for the file store.
type StorageConfig struct {
	Path string `toml:"path"`
}

// SheetsConfig holds the remote spreadsheet web-app endpoint configuration.
// The URL may also be set at runtime via the sync API, which persists it
// to the key-value store and takes precedence over this value.
type SheetsConfig struct {
	WebAppURL string `toml:"web_app_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration.
func (c *SheetsConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data",
		},
		Sheets: SheetsConfig{
			RateLimit: 2,
			Timeout:   "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("MICROCAP_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("MICROCAP_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("MICROCAP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("MICROCAP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("MICROCAP_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if url := os.Getenv("MICROCAP_SHEETS_URL"); url != "" {
		config.Sheets.WebAppURL = url
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
