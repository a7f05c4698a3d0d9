// Package config reads and writes the stride YAML config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/stride/internal/constants"
	"github.com/julianstephens/stride/internal/rollover"
)

const (
	EnvConfigPath   = "STRIDE_CONFIG"
	EnvDBConnection = "STRIDE_DB_CONNECTION"
)

type Config struct {
	// Storage is a SQLite path, a PostgreSQL connection string or a .json path.
	Storage           string        `yaml:"storage"`
	Timezone          string        `yaml:"timezone"`
	RolloverHour      int           `yaml:"rollover_hour"`
	ResetPollInterval time.Duration `yaml:"reset_poll_interval"`
	// Catalog is a path or URL of the exercise catalog; empty means builtin.
	Catalog string `yaml:"catalog,omitempty"`
	Debug   bool   `yaml:"debug"`

	// StorageFromEnv is set when $STRIDE_DB_CONNECTION supplied Storage.
	StorageFromEnv bool `yaml:"-"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Storage:           filepath.Join(ExpandHome(constants.DefaultConfigDir), constants.DefaultDBName),
		Timezone:          "Local",
		RolloverHour:      constants.DefaultRolloverHour,
		ResetPollInterval: constants.DefaultResetPollInterval,
	}
}

// Path is the config file location: $STRIDE_CONFIG or the default.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return ExpandHome(p)
	}
	return filepath.Join(ExpandHome(constants.DefaultConfigDir), constants.DefaultConfigName)
}

// Load reads path over the defaults. A missing file is not an error.
// $STRIDE_DB_CONNECTION replaces the storage setting.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if conn := os.Getenv(EnvDBConnection); conn != "" {
		cfg.Storage = conn
		cfg.StorageFromEnv = true
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if strings.TrimSpace(c.Storage) == "" {
		c.Storage = d.Storage
	}
	c.Storage = ExpandHome(c.Storage)
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.ResetPollInterval == 0 {
		c.ResetPollInterval = d.ResetPollInterval
	}
}

func (c *Config) Validate() error {
	if c.RolloverHour < 0 || c.RolloverHour > 23 {
		return fmt.Errorf("rollover_hour must be between 0 and 23, got %d", c.RolloverHour)
	}
	if c.ResetPollInterval < time.Second {
		return fmt.Errorf("reset_poll_interval must be at least 1s, got %s", c.ResetPollInterval)
	}
	if _, err := rollover.LoadLocation(c.Timezone); err != nil {
		return err
	}
	return nil
}

// Policy builds the day rollover policy from the config.
func (c *Config) Policy() (rollover.Policy, error) {
	return rollover.New(c.RolloverHour, c.Timezone)
}

// Save writes the config to path, creating its directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
