package api

import (
	"time"

	"github.com/scribble-arena/server/internal/engine"
	"github.com/scribble-arena/server/internal/storage"
)

// SessionHandler groups all battle-session HTTP handlers.
type SessionHandler struct {
	repo          storage.Repository
	actionTimeout time.Duration
	rng           engine.Rand
}

// NewSessionHandler creates a SessionHandler with the given repository,
// per-round action timeout (zero disables the turn timer) and randomness
// source for combat rolls.
func NewSessionHandler(repo storage.Repository, actionTimeout time.Duration, rng engine.Rand) *SessionHandler {
	return &SessionHandler{repo: repo, actionTimeout: actionTimeout, rng: rng}
}
