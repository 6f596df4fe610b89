// ABOUTME: Application configuration loaded from YAML, .env files and NOTELY_* variables.
// ABOUTME: Handles XDG config and data paths and backend selection.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite   = "sqlite"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

type Config struct {
	Backend  string         `yaml:"backend"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Badger   BadgerConfig   `yaml:"badger"`
	Postgres PostgresConfig `yaml:"postgres"`
	Engine   EngineConfig   `yaml:"engine"`
	Log      LogConfig      `yaml:"log"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type BadgerConfig struct {
	Dir      string `yaml:"dir"`
	InMemory bool   `yaml:"in_memory"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type EngineConfig struct {
	// MaxRetries bounds retries of conflicting writes. Zero means the default.
	MaxRetries int `yaml:"max_retries"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns a Config pointing at the XDG data directory.
func Default() *Config {
	return &Config{
		Backend: BackendSQLite,
		SQLite:  SQLiteConfig{Path: filepath.Join(DataDir(), "notely.db")},
		Badger:  BadgerConfig{Dir: filepath.Join(DataDir(), "badger")},
		Engine:  EngineConfig{MaxRetries: 16},
		Log: LogConfig{
			Level:      "warn",
			Format:     "text",
			MaxSize:    10,
			MaxAge:     30,
			MaxBackups: 3,
		},
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notely")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DataDir returns the directory notely keeps its databases in.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "notely")
}

// Load reads the config at path (ConfigPath() when empty). A missing file
// yields defaults. Values from .env files (the working directory first, then
// the config directory) apply next, and real environment variables win.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	dotenv := map[string]string{}
	for _, f := range []string{filepath.Join(ConfigDir(), ".env"), ".env"} {
		vals, err := godotenv.Read(f)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vals {
			dotenv[k] = v
		}
	}
	cfg.override(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	})
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) override(getenv func(string) string) {
	if val := getenv("NOTELY_BACKEND"); val != "" {
		c.Backend = val
	}
	if val := getenv("NOTELY_SQLITE_PATH"); val != "" {
		c.SQLite.Path = val
	}
	if val := getenv("NOTELY_BADGER_DIR"); val != "" {
		c.Badger.Dir = val
	}
	if val := getenv("NOTELY_POSTGRES_DSN"); val != "" {
		c.Postgres.DSN = val
	}
	if val := getenv("NOTELY_MAX_RETRIES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Engine.MaxRetries = n
		}
	}
	if val := getenv("NOTELY_LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := getenv("NOTELY_LOG_FILE"); val != "" {
		c.Log.File = val
	}
}

func (c *Config) setDefaults() {
	def := Default()
	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.Engine.MaxRetries <= 0 {
		c.Engine.MaxRetries = def.Engine.MaxRetries
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
}

// Validate checks that the selected backend has somewhere to store data.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.New("sqlite.path is required for the sqlite backend")
		}
	case BackendBadger:
		if c.Badger.Dir == "" && !c.Badger.InMemory {
			return errors.New("badger.dir is required unless badger.in_memory is set")
		}
	case BackendPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, badger or postgres)", c.Backend)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Save writes cfg to path (ConfigPath() when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
