// Package yaml loads server configuration from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingListenAddr  = errors.New("server.listen_addr is required")
	ErrInvalidMaxPages    = errors.New("scrape.max_pages must be at least 1")
	ErrInvalidConcurrency = errors.New("scrape.concurrency must be at least 1")
	ErrInvalidTimeout     = errors.New("scrape.timeout_sec must be at least 1")
	ErrInvalidRateLimit   = errors.New("scrape.rate_limit must be positive")
	ErrInvalidMinContent  = errors.New("scrape.min_content_length must be non-negative")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// ScrapeConfig contains default scrape settings applied to every request.
type ScrapeConfig struct {
	MaxPages         int     `yaml:"max_pages"`
	Concurrency      int     `yaml:"concurrency"`
	TimeoutSec       int     `yaml:"timeout_sec"`
	RateLimit        float64 `yaml:"rate_limit"`
	MinContentLength int     `yaml:"min_content_length"`
	Render           bool    `yaml:"render"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a configuration with sensible defaults. Fields set in a
// loaded file override these values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		Scrape: ScrapeConfig{
			MaxPages:         200,
			Concurrency:      10,
			TimeoutSec:       300,
			RateLimit:        2,
			MinContentLength: 80,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a configuration file, applies defaults for unset fields and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return ErrMissingListenAddr
	}

	if c.Scrape.MaxPages < 1 {
		return ErrInvalidMaxPages
	}

	if c.Scrape.Concurrency < 1 {
		return ErrInvalidConcurrency
	}

	if c.Scrape.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Scrape.RateLimit <= 0 {
		return ErrInvalidRateLimit
	}

	if c.Scrape.MinContentLength < 0 {
		return ErrInvalidMinContent
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// Timeout returns the per-request scrape timeout.
func (c *ScrapeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}
