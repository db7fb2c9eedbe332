package storage

import (
	"time"

	"github.com/scribble-arena/server/internal/game"
)

type Repository interface {
	CreateSession(s *game.Session) error
	// GetSessionByID returns (nil, nil) when no such session exists, so
	// callers can tell "not found" from a store failure.
	GetSessionByID(sessionID string) (*game.Session, error)
	// ListJoinableSessions returns waiting sessions with an open second
	// slot, newest first, limited to the configured lobby window.
	ListJoinableSessions() ([]game.Session, error)
	UpdateSession(s *game.Session) error
	DeleteSession(sessionID string) (bool, error)

	// ClaimPendingAction atomically records an action for one side of an
	// active session. claimed is false when that side already holds a
	// pending action this round (or the session left the active state).
	// both reports whether both sides now have pending actions; at most
	// one of two racing claimers observes both=true.
	ClaimPendingAction(sessionID, side string, action game.Action) (s *game.Session, claimed bool, both bool, err error)

	// FinishRound persists a resolved round. The write only applies while
	// the stored row still holds the exact action pair that was resolved,
	// so a racing resolver degrades to a no-op instead of double-applying
	// damage. applied=false means another writer already finished it.
	FinishRound(s *game.Session, a1, a2 game.Action) (applied bool, err error)

	UpsertWallet(address string) error
	// UpdateStatsOnBattleEnd counts one played battle for both wallets,
	// a win for the session winner and a flee for fledWallet (if any).
	UpdateStatsOnBattleEnd(s *game.Session, fledWallet string) error
	GetStatsByWallet(address string) (*game.WalletStats, error)
	GetTopWallets(limit int) ([]game.WalletStats, error)

	// FindTimedOutSessions returns active sessions whose action deadline
	// is set and at or before now. The caller decides how to resolve them.
	FindTimedOutSessions(now time.Time) ([]game.Session, error)
}
