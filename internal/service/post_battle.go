package service

import (
	"time"

	"github.com/scribble-arena/server/internal/game"
)

// Flee ends the battle unilaterally. The fleeing side is recorded as the
// loser and the opponent as winner.
func Flee(repo SessionRepo, sessionID, wallet string) (*game.Session, error) {
	s, err := repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	if s.SideOf(wallet) == "" {
		return nil, ErrNotParticipant
	}
	if s.Status != game.StatusActive {
		return nil, ErrSessionNotActive
	}
	s.Status = game.StatusCompleted
	s.Winner = s.OpponentWallet(wallet)
	s.Message = wallet + " fled the battle"
	s.User1.PendingAction = game.ActionNone
	s.User2.PendingAction = game.ActionNone
	s.ActionDeadline = time.Time{}
	if !s.StatsCounted {
		_ = repo.UpdateStatsOnBattleEnd(s, wallet)
		s.StatsCounted = true
	}
	if err := repo.UpdateSession(s); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordWinnerChoice stores the winner's mercy decision exactly once. The
// choice is advisory state for the minting flow; no on-chain call happens
// here.
func RecordWinnerChoice(repo SessionRepo, sessionID, wallet string, choice string) (*game.Session, error) {
	if choice != game.ChoiceSpare && choice != game.ChoiceBurn {
		return nil, ErrInvalidChoice
	}
	s, err := repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	if s.Status != game.StatusCompleted {
		return nil, ErrBattleNotCompleted
	}
	if s.Winner == "" {
		return nil, ErrNoWinner
	}
	if s.Winner != wallet {
		return nil, ErrNotWinner
	}
	if s.WinnerChoice != game.ChoiceNone {
		return nil, ErrChoiceAlreadyMade
	}
	s.WinnerChoice = choice
	s.Message = "Winner chose to " + choice
	if err := repo.UpdateSession(s); err != nil {
		return nil, err
	}
	return s, nil
}
