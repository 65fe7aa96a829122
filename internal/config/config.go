// Package config provides YAML-based configuration loading for vanops.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Defaults applied when a key is absent.
const (
	DefaultAppName      = "van-build-ops"
	DefaultStorageKey   = "van-build-ops:v1"
	DefaultDriver       = "sqlite"
	DefaultDBFile       = "vanops.db"
	DefaultLogLevel     = "info"
	DefaultLowStockFeet = 10
	FileName            = "config.yaml"
)

// Config is the top-level vanops configuration, loaded from config.yaml.
type Config struct {
	AppName   string          `yaml:"app_name"`
	Storage   StorageConfig   `yaml:"storage"`
	Backup    BackupConfig    `yaml:"backup"`
	Log       LogConfig       `yaml:"log"`
	Inventory InventoryConfig `yaml:"inventory"`
}

// StorageConfig selects the database that holds the storage slot. For
// sqlite, Path is the database file; the network drivers use the remaining
// connection fields.
type StorageConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Key      string `yaml:"key"`
}

// BackupConfig holds where exported backups are written.
type BackupConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig controls the log file and optional console echo.
type LogConfig struct {
	File    string `yaml:"file"`
	Console bool   `yaml:"console"`
	Level   string `yaml:"level"`
}

// InventoryConfig tunes the parts views.
type InventoryConfig struct {
	LowStockFeet float64 `yaml:"low_stock_feet"`
}

// DefaultDir returns the per-user configuration directory for vanops.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: user config dir: %w", err)
	}
	return filepath.Join(base, "vanops"), nil
}

// Default returns the configuration written on first run, with file paths
// rooted at dir.
func Default(dir string) *Config {
	cfg := &Config{
		Storage: StorageConfig{Driver: DefaultDriver, Path: filepath.Join(dir, DefaultDBFile)},
		Backup:  BackupConfig{Dir: filepath.Join(dir, "backups")},
		Log:     LogConfig{File: filepath.Join(dir, "vanops.log")},

		Inventory: InventoryConfig{LowStockFeet: DefaultLowStockFeet},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrCreate loads path, writing a default config there first if the file
// does not exist. The boolean reports whether the file was created.
func LoadOrCreate(path string) (*Config, bool, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, err
	}
	cfg = Default(filepath.Dir(path))
	if err := Save(path, cfg); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir for %s: %w", path, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Parse unmarshals YAML bytes into a validated Config. Keys where zero is
// meaningful are seeded before decoding so an explicit 0 survives.
func Parse(data []byte) (*Config, error) {
	cfg := Config{Inventory: InventoryConfig{LowStockFeet: DefaultLowStockFeet}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if c.Storage.Driver == "" {
		c.Storage.Driver = DefaultDriver
	}
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultStorageKey
	}
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			c.Storage.Path = DefaultDBFile
		}
	case "mysql":
		if c.Storage.Host == "" {
			c.Storage.Host = "127.0.0.1"
		}
		if c.Storage.Port == 0 {
			c.Storage.Port = 3306
		}
	case "postgres":
		if c.Storage.Host == "" {
			c.Storage.Host = "127.0.0.1"
		}
		if c.Storage.Port == 0 {
			c.Storage.Port = 5432
		}
	}
	if c.Storage.Driver != "sqlite" && c.Storage.Database == "" {
		c.Storage.Database = "vanops"
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = "."
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Storage.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		errs = append(errs, fmt.Sprintf("storage.driver %q is not one of sqlite, mysql, postgres", c.Storage.Driver))
	}
	if c.Storage.Driver != "sqlite" && c.Storage.User == "" {
		errs = append(errs, fmt.Sprintf("storage.user is required for %s", c.Storage.Driver))
	}
	if c.Storage.Port < 0 || c.Storage.Port > 65535 {
		errs = append(errs, fmt.Sprintf("storage.port %d is out of range", c.Storage.Port))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, "storage.key must not be blank")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is not a valid level", c.Log.Level))
	}
	if c.Inventory.LowStockFeet < 0 {
		errs = append(errs, "inventory.low_stock_feet must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
