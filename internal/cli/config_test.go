package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	// An explicitly named file must exist.
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}

	// Empty path with no config file present falls back to defaults.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.Cache != "file" {
		t.Errorf("Server.Cache = %q, want file", cfg.Server.Cache)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
page_size = 25

[server]
addr = ":9090"
session_ttl = "1h"
session_store = "redis"
cache = "redis"

[redis]
addr = "redis.internal:6379"
db = 2

[mongo]
uri = "mongodb://db.internal:27017"
database = "analytics"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.PageSize)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Server.SessionStore != "redis" {
		t.Errorf("SessionStore = %q, want redis", cfg.Server.SessionStore)
	}
	if cfg.Redis.Addr != "redis.internal:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v, want addr redis.internal:6379 db 2", cfg.Redis)
	}
	if cfg.Mongo.Database != "analytics" {
		t.Errorf("Mongo.Database = %q, want analytics", cfg.Mongo.Database)
	}
	if got := cfg.Server.ParsedSessionTTL(); got != time.Hour {
		t.Errorf("ParsedSessionTTL() = %v, want 1h", got)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("page_size = 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.PageSize)
	}
	// Unset sections keep their defaults.
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default :8080", cfg.Server.Addr)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("page_size = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestParsedSessionTTLFallback(t *testing.T) {
	tests := []struct {
		name string
		ttl  string
		want time.Duration
	}{
		{"empty", "", 24 * time.Hour},
		{"invalid", "soon", 24 * time.Hour},
		{"negative", "-1h", 24 * time.Hour},
		{"valid", "30m", 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ServerConfig{SessionTTL: tt.ttl}
			if got := cfg.ParsedSessionTTL(); got != tt.want {
				t.Errorf("ParsedSessionTTL() = %v, want %v", got, tt.want)
			}
		})
	}
}
