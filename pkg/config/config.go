// Package config provides configuration loading and validation for ireina.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/swordfeng/ireina/pkg/version"
)

// Load loads configuration from YAML file and environment variables.
func Load(path string) (*Config, error) {
	// Validate and sanitize path
	cleanPath := filepath.Clean(path)
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	// Read config file
	data, err := os.ReadFile(absPath) // #nosec G304 -- Path sanitized with filepath.Clean and filepath.Abs
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in YAML
	expanded := os.ExpandEnv(string(data))

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults
	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults sets default values for optional fields.
func applyDefaults(cfg *Config) {
	// HTTP client defaults
	if cfg.HTTP.Timeout.ToDuration() == 0 {
		cfg.HTTP.Timeout = Duration(10 * time.Second)
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = version.UserAgent()
	}

	// One upstream request per source per TTL window
	if cfg.Cache.TTL.ToDuration() == 0 {
		cfg.Cache.TTL = Duration(5 * time.Second)
	}

	// Report defaults
	if cfg.Report.Interval.ToDuration() == 0 {
		cfg.Report.Interval = Duration(60 * time.Second)
	}

	// Monitor defaults
	if cfg.Monitor.PollInterval.ToDuration() == 0 {
		cfg.Monitor.PollInterval = Duration(time.Hour)
	}
	if cfg.Monitor.Retention.ToDuration() == 0 {
		cfg.Monitor.Retention = Duration(24 * time.Hour)
	}

	// Metrics defaults
	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9091"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
