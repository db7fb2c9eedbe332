package service

import (
	"errors"

	"github.com/scribble-arena/server/internal/game"
)

// SessionRepo is the narrow persistence surface the battle coordinator
// needs. storage.Repository satisfies it; tests use in-memory mocks.
type SessionRepo interface {
	CreateSession(s *game.Session) error
	GetSessionByID(sessionID string) (*game.Session, error)
	UpdateSession(s *game.Session) error
	ClaimPendingAction(sessionID, side string, action game.Action) (*game.Session, bool, bool, error)
	FinishRound(s *game.Session, a1, a2 game.Action) (bool, error)
	UpsertWallet(address string) error
	UpdateStatsOnBattleEnd(s *game.Session, fledWallet string) error
}

var (
	ErrSessionNotFound        = errors.New("session not found")
	ErrSessionNotActive       = errors.New("session is not active")
	ErrSessionInactive        = errors.New("session is no longer joinable")
	ErrSessionFull            = errors.New("session already has two players")
	ErrSelfJoin               = errors.New("cannot join your own session")
	ErrNotParticipant         = errors.New("wallet is not part of this session")
	ErrWalletRequired         = errors.New("wallet address is required")
	ErrActionAlreadySubmitted = errors.New("action already submitted for this round")
	ErrBattleNotCompleted     = errors.New("battle is not completed")
	ErrNoWinner               = errors.New("battle ended without a winner")
	ErrNotWinner              = errors.New("only the winner may choose")
	ErrChoiceAlreadyMade      = errors.New("winner choice already made")
	ErrInvalidChoice          = errors.New("invalid winner choice")
)
