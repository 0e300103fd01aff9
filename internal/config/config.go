// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/the-momentum/open-wearables-sub001/internal/shared"
)

// Config holds the application's configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logging   LoggingConfig   `toml:"logging"`
	Lifecycle LifecycleConfig `toml:"lifecycle"`
	JWT       JWTConfig       `toml:"jwt"`

	AdminPassword      string `toml:"-"` // Not loaded from file, set by CLI/env
	ResetAdminPassword bool   `toml:"-"` // Not loaded from file, set by CLI/env
	JWTSecret          string `toml:"-"` // Runtime secret (from env, flag, or file)

	MaxBatchSizeBytes     int64         `toml:"-"` // Runtime computed value
	LifecycleTickInterval time.Duration `toml:"-"` // Runtime computed value
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	MaxBatchSize string `toml:"max_batch_size"` // e.g. "1MB", "512KB"
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// LifecycleConfig holds the background lifecycle worker settings.
type LifecycleConfig struct {
	CheckInterval string `toml:"check_interval"` // e.g. "1h"
}

// JWTConfig holds settings for token generation.
type JWTConfig struct {
	AccessDurationMin int    `toml:"access_duration_min"`
	Secret            string `toml:"secret"` // Persisted secret
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used to persist the auto-generated JWT secret.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes.
func (c *Config) ParseAndValidate() error {
	if c.Server.MaxBatchSize == "" {
		c.Server.MaxBatchSize = "1MB"
	}
	sizeBytes, err := shared.ParseSize(c.Server.MaxBatchSize)
	if err != nil {
		return fmt.Errorf("invalid max_batch_size: %w", err)
	}
	c.MaxBatchSizeBytes = sizeBytes

	if c.Lifecycle.CheckInterval == "" {
		c.Lifecycle.CheckInterval = "1h"
	}
	// "0" disables the background worker entirely.
	interval, err := shared.ParseDuration(c.Lifecycle.CheckInterval)
	if err != nil {
		return fmt.Errorf("invalid check_interval: %w", err)
	}
	if interval != 0 && interval < time.Minute {
		return fmt.Errorf("check_interval must be at least one minute, got %s", interval)
	}
	c.LifecycleTickInterval = interval

	return nil
}
