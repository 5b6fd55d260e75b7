// Package config loads dashboard configuration: a YAML file for tunables,
// the environment for secrets. Secrets are never written to disk and never
// defaulted.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/jyang234/dayplan/internal/core"
)

// Config holds the full runtime configuration.
type Config struct {
	Server   ServerConfig      `mapstructure:"server" yaml:"server"`
	Storage  StorageConfig     `mapstructure:"storage" yaml:"storage"`
	Planning PlanningConfig    `mapstructure:"planning" yaml:"planning"`
	Cache    CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Colors   map[string]string `mapstructure:"colors" yaml:"colors,omitempty"`

	// Secrets, environment-only.
	TodoistToken string `mapstructure:"-" yaml:"-"`
	Password     string `mapstructure:"-" yaml:"-"`
}

// ServerConfig holds the HTTP listen settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// StorageConfig holds the SQLite location.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// PlanningConfig holds allocation defaults.
type PlanningConfig struct {
	DefaultWorkHours float64 `mapstructure:"default_work_hours" yaml:"default_work_hours"`
}

// CacheConfig tunes the task cache.
type CacheConfig struct {
	TaskTTLMinutes  int    `mapstructure:"task_ttl_minutes" yaml:"task_ttl_minutes"`
	RefreshSchedule string `mapstructure:"refresh_schedule" yaml:"refresh_schedule"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{DBPath: "~/.dayplan/dayplan.db"},
		Planning: PlanningConfig{
			DefaultWorkHours: 8,
		},
		Cache: CacheConfig{
			TaskTTLMinutes:  5,
			RefreshSchedule: "@every 5m",
		},
	}
}

// Load merges the config file (if present) over defaults and pulls secrets
// from the environment.
func Load() (*Config, error) {
	cfg := Default()

	if err := loadFile(Path(), cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg.TodoistToken = os.Getenv("TODOIST_API_TOKEN")
	cfg.Password = os.Getenv("DAYPLAN_PASSWORD")

	if addr := os.Getenv("DAYPLAN_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if dbPath := os.Getenv("DAYPLAN_DB"); dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}

	return cfg, nil
}

// Validate checks the configuration required to serve. Missing secrets are
// fatal configuration errors.
func (c *Config) Validate() error {
	if c.TodoistToken == "" {
		return fmt.Errorf("TODOIST_API_TOKEN is required")
	}
	if c.Password == "" {
		return fmt.Errorf("DAYPLAN_PASSWORD is required")
	}
	return nil
}

// PlannerConfig maps the loaded configuration to the planning engine's
// config shape.
func (c *Config) PlannerConfig() core.Config {
	return core.Config{
		TodoistToken:     c.TodoistToken,
		DBPath:           c.Storage.DBPath,
		TaskCacheTTL:     time.Duration(c.Cache.TaskTTLMinutes) * time.Minute,
		DefaultWorkHours: c.Planning.DefaultWorkHours,
		ColorOverrides:   c.Colors,
	}
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// Path returns the config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dayplan", "config.yaml")
	}
	return filepath.Join(home, ".dayplan", "config.yaml")
}
