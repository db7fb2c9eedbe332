package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/scribble-arena/server/internal/api"
	"github.com/scribble-arena/server/internal/constants"
	"github.com/scribble-arena/server/internal/engine"
	"github.com/scribble-arena/server/internal/logging"
)

func main() {
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// ARENA_DB overrides the configured database path (container deploys
	// mount the data volume at an arbitrary location).
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = cfg.DatabasePath
	}
	repo := openRepositoryOrExit(dbPath, cfg.LobbyTTL)

	rng := engine.SystemRand()
	handler := api.NewSessionHandler(repo, cfg.ActionTimeout, rng)

	// The turn timer is opt-in; with no timeout configured a round waits
	// for submissions indefinitely and clients simply keep polling.
	if cfg.ActionTimeout > 0 {
		startTimeoutScanner(repo, rng, cfg.ActionTimeout)
	}

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteWalletStats, handler.GetWalletStats)

		apiRoutes.POST(constants.RouteSessions, handler.CreateSession)
		apiRoutes.GET(constants.RouteSessions, handler.ListJoinableSessions)
		apiRoutes.GET(constants.RouteSessionByID, handler.GetSession)
		apiRoutes.DELETE(constants.RouteSessionByID, handler.DeleteSession)
		apiRoutes.POST(constants.RouteSessionJoin, handler.JoinSession)
		apiRoutes.POST(constants.RouteSessionAction, handler.SubmitAction)
		apiRoutes.POST(constants.RouteSessionReset, handler.ResetRound)
		apiRoutes.POST(constants.RouteSessionFlee, handler.Flee)
		apiRoutes.POST(constants.RouteSessionChoice, handler.RecordWinnerChoice)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
