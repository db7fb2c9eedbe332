package main

import (
	"time"

	"github.com/scribble-arena/server/internal/config"
	"github.com/scribble-arena/server/internal/logging"
	"github.com/scribble-arena/server/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Invalid arena configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func openRepositoryOrExit(dbPath string, lobbyTTL time.Duration) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db, lobbyTTL)
}
