package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/scribble-arena/server/internal/game"
)

// NewCombatant carries the caller-supplied fields for one side of a battle.
// The HTTP layer validates the attribute budget; this layer just builds the
// combatant and derives its health pool.
type NewCombatant struct {
	WalletAddress string
	Image         string
	Attributes    game.Attributes
}

func buildCombatant(nc NewCombatant) game.Combatant {
	return game.Combatant{
		WalletAddress: nc.WalletAddress,
		Image:         nc.Image,
		Attributes:    nc.Attributes,
		RawAttributes: game.EncodeAttributes(nc.Attributes),
		Health:        game.MaxHealth(nc.Attributes),
	}
}

// CreateSession opens a new waiting session with the host in the user1 slot.
func CreateSession(repo SessionRepo, host NewCombatant) (*game.Session, error) {
	if host.WalletAddress == "" {
		return nil, ErrWalletRequired
	}
	s := &game.Session{
		SessionID: uuid.NewString(),
		Status:    game.StatusWaiting,
		User1:     buildCombatant(host),
		Message:   "Waiting for an opponent to join.",
	}
	_ = repo.UpsertWallet(host.WalletAddress)
	if err := repo.CreateSession(s); err != nil {
		return nil, err
	}
	return s, nil
}

// JoinSession seats a second player and flips the session to active. The
// self-join check runs before any other state check: joining your own
// session is rejected no matter what state it is in.
func JoinSession(repo SessionRepo, sessionID string, joiner NewCombatant, actionTimeout time.Duration) (*game.Session, error) {
	if joiner.WalletAddress == "" {
		return nil, ErrWalletRequired
	}
	s, err := repo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrSessionNotFound
	}
	if s.User1.WalletAddress == joiner.WalletAddress {
		return nil, ErrSelfJoin
	}
	if s.Status == game.StatusCompleted {
		return nil, ErrSessionInactive
	}
	if s.User2.Present() {
		return nil, ErrSessionFull
	}
	s.User2 = buildCombatant(joiner)
	s.Status = game.StatusActive
	s.Message = "Opponent joined. Choose your actions."
	if actionTimeout > 0 {
		s.ActionDeadline = time.Now().Add(actionTimeout)
	}
	_ = repo.UpsertWallet(joiner.WalletAddress)
	if err := repo.UpdateSession(s); err != nil {
		return nil, err
	}
	return s, nil
}
