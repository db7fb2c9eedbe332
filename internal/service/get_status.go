package service

import (
	"golang.org/x/sync/singleflight"

	"github.com/scribble-arena/server/internal/game"
)

// statusGroup collapses concurrent status polls for the same session into a
// single store read. Clients poll on an interval, so bursts of identical
// reads are the common case.
var statusGroup singleflight.Group

// GetStatus returns the current session snapshot without mutating anything.
// Repeated calls with no intervening submission return identical pending
// action state.
func GetStatus(repo SessionRepo, sessionID string) (*game.Session, error) {
	v, err, _ := statusGroup.Do(sessionID, func() (interface{}, error) {
		return repo.GetSessionByID(sessionID)
	})
	if err != nil {
		return nil, err
	}
	s, _ := v.(*game.Session)
	if s == nil {
		return nil, ErrSessionNotFound
	}
	return s, nil
}
