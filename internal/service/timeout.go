package service

import (
	"errors"
	"time"

	"github.com/scribble-arena/server/internal/engine"
	"github.com/scribble-arena/server/internal/game"
	"github.com/scribble-arena/server/internal/logging"
)

// HandleTimedOutSession resolves a round whose action deadline has passed.
// Behavior:
//   - neither side submitted -> the battle ends with no winner and does not
//     count toward wallet stats
//   - exactly one side submitted -> a BLOCK is auto-submitted for the idle
//     side so the round resolves through the normal path
func HandleTimedOutSession(repo SessionRepo, s *game.Session, rng engine.Rand, actionTimeout time.Duration) error {
	if s.Status != game.StatusActive {
		return nil
	}
	p1 := s.User1.PendingAction != game.ActionNone
	p2 := s.User2.PendingAction != game.ActionNone

	switch {
	case !p1 && !p2:
		s.Status = game.StatusCompleted
		s.Winner = ""
		s.Message = "Battle ended due to inactivity"
		s.LastRoundLog = "Round timed out: neither player submitted an action in time."
		s.StatsCounted = true
		s.ActionDeadline = time.Time{}
		logging.Info("both players timed out; completing session", logging.Fields{"session_id": s.SessionID})
		return repo.UpdateSession(s)
	case p1 && !p2:
		return autoBlock(repo, s, s.User2.WalletAddress, rng, actionTimeout)
	case !p1 && p2:
		return autoBlock(repo, s, s.User1.WalletAddress, rng, actionTimeout)
	default:
		// both submitted; the round is about to resolve on its own
		return nil
	}
}

func autoBlock(repo SessionRepo, s *game.Session, wallet string, rng engine.Rand, actionTimeout time.Duration) error {
	logging.Info("auto-submitting block for inactive player", logging.Fields{"session_id": s.SessionID, "wallet": wallet})
	_, _, err := SubmitAction(repo, s.SessionID, wallet, game.ActionBlock, rng, actionTimeout)
	if errors.Is(err, ErrActionAlreadySubmitted) || errors.Is(err, ErrSessionNotActive) {
		// lost the race against a real submission or a concurrent expiry
		return nil
	}
	return err
}
