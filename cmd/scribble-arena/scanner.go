package main

import (
	"time"

	"github.com/scribble-arena/server/internal/engine"
	"github.com/scribble-arena/server/internal/logging"
	"github.com/scribble-arena/server/internal/service"
	"github.com/scribble-arena/server/internal/storage"
)

// startTimeoutScanner periodically expires rounds whose action deadline has
// passed and delegates handling to service.HandleTimedOutSession.
func startTimeoutScanner(repo storage.Repository, rng engine.Rand, actionTimeout time.Duration) {
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			sessions, err := repo.FindTimedOutSessions(now)
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			// process sequentially; keeps the DB safe under SQLite
			for i := range sessions {
				s := &sessions[i]
				if err := service.HandleTimedOutSession(repo, s, rng, actionTimeout); err != nil {
					logging.Error("failed to expire session", err, logging.Fields{"session_id": s.SessionID})
				}
			}
		}
	}()
}
