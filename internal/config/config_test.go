package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena_config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("expected default address, got %q", cfg.ServerAddress)
	}
	if cfg.ActionTimeout != 0 {
		t.Fatalf("turn timer must default to disabled, got %v", cfg.ActionTimeout)
	}
	if cfg.LobbyTTL != 10*time.Minute {
		t.Fatalf("expected default lobby TTL, got %v", cfg.LobbyTTL)
	}
}

func TestLoadConfig_ParsesValues(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"address": ":9090"},
		"database": {"path": "/tmp/test-arena.db"},
		"action_timeout_seconds": 45,
		"lobby_ttl_minutes": 5
	}`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.ServerAddress)
	}
	if cfg.DatabasePath != "/tmp/test-arena.db" {
		t.Fatalf("unexpected db path %q", cfg.DatabasePath)
	}
	if cfg.ActionTimeout != 45*time.Second {
		t.Fatalf("expected 45s timeout, got %v", cfg.ActionTimeout)
	}
	if cfg.LobbyTTL != 5*time.Minute {
		t.Fatalf("expected 5m lobby TTL, got %v", cfg.LobbyTTL)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, `{"server":`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for malformed config")
	}
}

func TestLoadConfig_NegativeTimeout(t *testing.T) {
	path := writeConfig(t, `{"action_timeout_seconds": -5}`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for a negative timeout")
	}
}
