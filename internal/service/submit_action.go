package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/scribble-arena/server/internal/engine"
	"github.com/scribble-arena/server/internal/game"
)

// SubmitAction records a player's chosen action and resolves the round when
// both sides have submitted. Returns the updated session and a boolean
// indicating whether the round was resolved.
//
// The pending-action slot is claimed through a single conditional update in
// the store, so two racing submissions from the same side cannot both
// succeed and two racing resolvers cannot both apply damage.
func SubmitAction(repo SessionRepo, sessionID, wallet string, action game.Action, rng engine.Rand, actionTimeout time.Duration) (*game.Session, bool, error) {
	if !action.Valid() {
		return nil, false, engine.ErrInvalidAction
	}
	s, err := repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, false, err
	}
	if s == nil {
		return nil, false, ErrSessionNotFound
	}
	side := s.SideOf(wallet)
	if side == "" {
		return nil, false, ErrNotParticipant
	}
	if s.Status != game.StatusActive {
		return nil, false, ErrSessionNotActive
	}

	claimedSession, claimed, both, err := repo.ClaimPendingAction(sessionID, side, action)
	if err != nil {
		return nil, false, err
	}
	if !claimed {
		if claimedSession == nil {
			return nil, false, ErrSessionNotFound
		}
		if claimedSession.Status != game.StatusActive {
			return nil, false, ErrSessionNotActive
		}
		return nil, false, ErrActionAlreadySubmitted
	}
	if !both {
		// Waiting for the opponent; the caller polls until the round turns.
		return claimedSession, false, nil
	}

	if err := resolveRound(repo, claimedSession, rng, actionTimeout); err != nil {
		return nil, true, err
	}
	return claimedSession, true, nil
}

// resolveRound runs the combat resolver over the claimed action pair and
// persists the result. Both pending actions are cleared in the same write
// that applies damage, never independently.
func resolveRound(repo SessionRepo, s *game.Session, rng engine.Rand, actionTimeout time.Duration) error {
	a1, a2 := s.User1.PendingAction, s.User2.PendingAction
	out, err := engine.ResolveRound(&s.User1, &s.User2, a1, a2, rng)
	if err != nil {
		return err
	}
	applyOutcome(s, out)

	if s.Status == game.StatusCompleted {
		if !s.StatsCounted {
			_ = repo.UpdateStatsOnBattleEnd(s, "")
			s.StatsCounted = true
		}
		s.ActionDeadline = time.Time{}
	} else if actionTimeout > 0 {
		s.ActionDeadline = time.Now().Add(actionTimeout)
	}

	// The claim protocol guarantees a single resolver per round; a lost
	// FinishRound race means the round is already persisted, which is fine.
	_, err = repo.FinishRound(s, a1, a2)
	return err
}

func applyOutcome(s *game.Session, out *engine.Outcome) {
	s.User1.Health = floorZero(s.User1.Health - out.DamageTo1)
	s.User2.Health = floorZero(s.User2.Health - out.DamageTo2)
	applyEffects(&s.User1, out.EffectsOn1)
	applyEffects(&s.User2, out.EffectsOn2)
	s.User1.PendingAction = game.ActionNone
	s.User2.PendingAction = game.ActionNone
	s.LastRoundLog = strings.Join(out.Log, "\n")
	s.RoundCount++

	ko1 := s.User1.Health == 0
	ko2 := s.User2.Health == 0
	switch {
	case ko1 && ko2:
		s.Status = game.StatusCompleted
		s.Winner = ""
		s.Message = "Both fighters fall. The battle is a draw."
	case ko1:
		s.Status = game.StatusCompleted
		s.Winner = s.User2.WalletAddress
		s.Message = "Victory for " + s.User2.WalletAddress
	case ko2:
		s.Status = game.StatusCompleted
		s.Winner = s.User1.WalletAddress
		s.Message = "Victory for " + s.User1.WalletAddress
	default:
		s.Message = "Round " + strconv.Itoa(s.RoundCount) + " resolved. Choose your next actions."
	}
}

func applyEffects(c *game.Combatant, effects []engine.Effect) {
	for _, e := range effects {
		switch e {
		case engine.EffectCharged:
			c.Charged = true
		case engine.EffectChargeReleased:
			c.Charged = false
		}
	}
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
