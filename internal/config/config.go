package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	// ActionTimeoutSeconds enables the optional per-round turn timer. Zero
	// (the default) disables it: a round may then wait for a submission
	// indefinitely.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	// LobbyTTLMinutes bounds how long a waiting session stays listed in
	// the joinable lobby.
	LobbyTTLMinutes int `json:"lobby_ttl_minutes"`
}

// LoadedConfig contains the resolved server settings.
type LoadedConfig struct {
	ServerAddress string
	DatabasePath  string
	ActionTimeout time.Duration
	LobbyTTL      time.Duration
}

func defaults() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress: ":8080",
		DatabasePath:  "./data/arena.db",
		ActionTimeout: 0,
		LobbyTTL:      10 * time.Minute,
	}
}

// LoadConfig reads the configuration file at path. A missing file is not an
// error: the server runs on defaults. A present but malformed file is fatal
// to the caller.
func LoadConfig(path string) (*LoadedConfig, error) {
	out := defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		out.DatabasePath = rc.Database.Path
	}
	if rc.ActionTimeoutSeconds < 0 {
		return nil, fmt.Errorf("config file %s: action_timeout_seconds must not be negative", path)
	}
	out.ActionTimeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	if rc.LobbyTTLMinutes > 0 {
		out.LobbyTTL = time.Duration(rc.LobbyTTLMinutes) * time.Minute
	}
	return out, nil
}
