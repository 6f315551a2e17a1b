// Package config loads the application settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "volley-stats.yaml"

// DataDirEnv relocates the storage directory (for example onto a mounted volume).
const DataDirEnv = "VOLLEY_STATS_DATA_DIR"

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

type Config struct {
	Debug   bool    `yaml:"debug"`
	Storage Storage `yaml:"storage"`
	Auth    Auth    `yaml:"auth"`
}

type Storage struct {
	Backend Backend `yaml:"backend"`
	// Dir holds one JSON document per match for the json backend.
	Dir        string `yaml:"dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

type Auth struct {
	Enabled  bool   `yaml:"enabled"`
	Username string `yaml:"username"`
	// PasswordHash is a bcrypt hash; see `matchctl hash-password`.
	PasswordHash string `yaml:"password_hash"`
}

func Default() Config {
	return Config{
		Storage: Storage{
			Backend:    BackendJSON,
			Dir:        "match_data",
			SQLitePath: "volley-stats.db",
		},
		Auth: Auth{Username: "admin"},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if dir := os.Getenv(DataDirEnv); dir != "" {
		cfg.Storage.Dir = filepath.Join(dir, "match_data")
		cfg.Storage.SQLitePath = filepath.Join(dir, "volley-stats.db")
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Auth.Enabled {
		if c.Auth.Username == "" {
			return errors.New("auth enabled without username")
		}
		if c.Auth.PasswordHash == "" {
			return errors.New("auth enabled without password_hash")
		}
	}
	return nil
}

func applyDefaults(c *Config) {
	def := Default()
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = def.Storage.Dir
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = def.Storage.SQLitePath
	}
}
