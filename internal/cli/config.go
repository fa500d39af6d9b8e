package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tablekit/tablekit/pkg/session"
)

// Config is the TOML configuration file format.
//
// Example (~/.config/tablekit/config.toml):
//
//	page_size = 25
//
//	[server]
//	addr = ":8080"
//	session_ttl = "24h"
//	session_store = "memory"
//	cache = "file"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[mongo]
//	uri = "mongodb://localhost:27017"
//	database = "analytics"
type Config struct {
	// PageSize is the default page size for browse and query.
	PageSize int `toml:"page_size"`

	Server ServerConfig `toml:"server"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`

	// SessionTTL is a duration string, e.g. "24h".
	SessionTTL string `toml:"session_ttl"`

	// SessionStore selects the session backend: "memory", "file" or "redis".
	SessionStore string `toml:"session_store"`

	// Cache selects the result cache backend: "file", "redis" or "none".
	Cache string `toml:"cache"`
}

// RedisConfig configures the shared Redis connection.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures MongoDB dataset sources.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		PageSize: 10,
		Server: ServerConfig{
			Addr:         ":8080",
			SessionTTL:   "24h",
			SessionStore: "memory",
			Cache:        "file",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Mongo: MongoConfig{
			URI: "mongodb://localhost:27017",
		},
	}
}

// configPath returns the default config file location
// (~/.config/tablekit/config.toml, honoring XDG_CONFIG_HOME).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the TOML config at path, falling back to the default
// location when path is empty. A missing file yields the defaults; a
// malformed file is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParsedSessionTTL parses the configured session TTL, falling back to the
// package default on empty or invalid values.
func (c ServerConfig) ParsedSessionTTL() time.Duration {
	if c.SessionTTL == "" {
		return session.DefaultTTL
	}
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return session.DefaultTTL
	}
	return d
}
