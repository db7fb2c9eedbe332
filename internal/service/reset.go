package service

import "github.com/scribble-arena/server/internal/game"

// ResetForNextRound clears both pending actions without resolving them, for
// UI-driven manual "start next round" flows. Both slots are cleared in one
// write; only legal while the session is active.
func ResetForNextRound(repo SessionRepo, sessionID string) (*game.Session, error) {
	s, err := repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	if s.Status != game.StatusActive {
		return nil, ErrSessionNotActive
	}
	s.User1.PendingAction = game.ActionNone
	s.User2.PendingAction = game.ActionNone
	s.Message = "Round reset. Choose your actions."
	if err := repo.UpdateSession(s); err != nil {
		return nil, err
	}
	return s, nil
}
