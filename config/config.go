// Package config loads chartfed's file configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FetchConfig holds transport settings.
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
	UserAgent      string `yaml:"user_agent"`
}

// StorageConfig holds persistence paths.
type StorageConfig struct {
	CatalogDSN   string `yaml:"catalog_dsn"`
	SnapshotsDir string `yaml:"snapshots_dir"`
}

// Config represents the structure of ~/.chartfed/config.yaml.
type Config struct {
	Fetch   FetchConfig   `yaml:"fetch"`
	Storage StorageConfig `yaml:"storage"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Fetch: FetchConfig{
			TimeoutSeconds: 25,
			MaxRetries:     5,
		},
		Storage: StorageConfig{
			CatalogDSN:   "catalog.db",
			SnapshotsDir: "snapshots",
		},
	}
}

// Timeout returns the fetch timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// Load reads ~/.chartfed/config.yaml over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	configPath := filepath.Join(homeDir, ".chartfed", "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		if err := loadInto(configPath, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// LoadFile reads an explicit config file over the defaults. The file must
// exist.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadInto(path, cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// applyEnv lets the storage paths be pointed elsewhere without a config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CHARTFED_CATALOG_DSN"); v != "" {
		cfg.Storage.CatalogDSN = v
	}
	if v := os.Getenv("CHARTFED_SNAPSHOTS_DIR"); v != "" {
		cfg.Storage.SnapshotsDir = v
	}
}
