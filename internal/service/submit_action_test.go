package service

import (
	"errors"
	"testing"
	"time"

	"github.com/scribble-arena/server/internal/engine"
	"github.com/scribble-arena/server/internal/game"
)

// mockRepo is an in-memory SessionRepo with the same claim semantics as the
// SQLite store: a pending-action slot is claimed only while it is empty.
type mockRepo struct {
	sessions   map[string]*game.Session
	wallets    map[string]bool
	statsCalls int
	fledWallet string
}

func newMockRepo() *mockRepo {
	return &mockRepo{sessions: map[string]*game.Session{}, wallets: map[string]bool{}}
}

func (m *mockRepo) CreateSession(s *game.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *mockRepo) GetSessionByID(id string) (*game.Session, error) {
	return m.sessions[id], nil
}

func (m *mockRepo) UpdateSession(s *game.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *mockRepo) ClaimPendingAction(id, side string, action game.Action) (*game.Session, bool, bool, error) {
	s := m.sessions[id]
	if s == nil {
		return nil, false, false, nil
	}
	if s.Status != game.StatusActive {
		return s, false, false, nil
	}
	c := s.CombatantFor(side)
	if c.PendingAction != game.ActionNone {
		return s, false, false, nil
	}
	c.PendingAction = action
	return s, true, s.BothActionsPresent(), nil
}

func (m *mockRepo) FinishRound(s *game.Session, a1, a2 game.Action) (bool, error) {
	m.sessions[s.SessionID] = s
	return true, nil
}

func (m *mockRepo) UpsertWallet(address string) error {
	m.wallets[address] = true
	return nil
}

func (m *mockRepo) UpdateStatsOnBattleEnd(s *game.Session, fledWallet string) error {
	m.statsCalls++
	m.fledWallet = fledWallet
	return nil
}

type scriptedRand struct {
	vals []float64
	i    int
}

func (r *scriptedRand) Float64() float64 {
	if r.i >= len(r.vals) {
		return 0.99
	}
	v := r.vals[r.i]
	r.i++
	return v
}

func seedActiveSession(m *mockRepo, id string) *game.Session {
	a1 := game.Attributes{Attack: 2, Defense: 1, Speed: 0}
	a2 := game.Attributes{Attack: 1, Defense: 1, Speed: 1}
	s := &game.Session{
		SessionID: id,
		Status:    game.StatusActive,
		User1: game.Combatant{
			WalletAddress: "w1",
			Attributes:    a1,
			RawAttributes: game.EncodeAttributes(a1),
			Health:        game.MaxHealth(a1),
		},
		User2: game.Combatant{
			WalletAddress: "w2",
			Attributes:    a2,
			RawAttributes: game.EncodeAttributes(a2),
			Health:        game.MaxHealth(a2),
		},
	}
	m.sessions[id] = s
	return s
}

func TestSubmitAction_WaitsForOpponent(t *testing.T) {
	repo := newMockRepo()
	seedActiveSession(repo, "s1")

	s, resolved, err := SubmitAction(repo, "s1", "w1", game.ActionPunch, &scriptedRand{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved {
		t.Fatal("round must not resolve after a single submission")
	}
	if s.User1.PendingAction != game.ActionPunch {
		t.Fatalf("expected stored punch, got %q", s.User1.PendingAction)
	}
	if s.User2.Health != 180 {
		t.Fatalf("no damage may be applied while waiting, got health %d", s.User2.Health)
	}
}

func TestSubmitAction_ResolvesWhenBothSubmitted(t *testing.T) {
	repo := newMockRepo()

	host := NewCombatant{WalletAddress: "w1", Attributes: game.Attributes{Attack: 2, Defense: 1, Speed: 0}}
	created, err := CreateSession(repo, host)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	joiner := NewCombatant{WalletAddress: "w2", Attributes: game.Attributes{Attack: 1, Defense: 1, Speed: 1}}
	joined, err := JoinSession(repo, created.SessionID, joiner, 0)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.Status != game.StatusActive {
		t.Fatalf("expected active after join, got %q", joined.Status)
	}
	if joined.User1.Health != 180 || joined.User2.Health != 180 {
		t.Fatalf("expected both at 180 health, got %d/%d", joined.User1.Health, joined.User2.Health)
	}

	if _, resolved, err := SubmitAction(repo, created.SessionID, "w1", game.ActionPunch, &scriptedRand{vals: []float64{0.9}}, 0); err != nil || resolved {
		t.Fatalf("first submission: resolved=%v err=%v", resolved, err)
	}
	s, resolved, err := SubmitAction(repo, created.SessionID, "w2", game.ActionBlock, &scriptedRand{vals: []float64{0.9}}, 0)
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if !resolved {
		t.Fatal("round must resolve once both sides submitted")
	}
	// blocked punch floors at 1
	if s.User2.Health != 179 {
		t.Fatalf("expected defender at 179, got %d", s.User2.Health)
	}
	if s.User1.Health != 180 {
		t.Fatalf("blocker deals no damage, attacker should hold 180, got %d", s.User1.Health)
	}
	if s.User1.PendingAction != game.ActionNone || s.User2.PendingAction != game.ActionNone {
		t.Fatal("pending actions must be cleared after resolution")
	}
	if s.RoundCount != 1 {
		t.Fatalf("expected round count 1, got %d", s.RoundCount)
	}
	if s.Status != game.StatusActive {
		t.Fatalf("battle should continue, got %q", s.Status)
	}
	if s.LastRoundLog == "" {
		t.Fatal("expected a round log")
	}
}

func TestSubmitAction_DoubleSubmissionRejected(t *testing.T) {
	repo := newMockRepo()
	seedActiveSession(repo, "s1")

	if _, _, err := SubmitAction(repo, "s1", "w1", game.ActionPunch, &scriptedRand{}, 0); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	_, _, err := SubmitAction(repo, "s1", "w1", game.ActionKick, &scriptedRand{}, 0)
	if !errors.Is(err, ErrActionAlreadySubmitted) {
		t.Fatalf("expected ErrActionAlreadySubmitted, got %v", err)
	}
	if got := repo.sessions["s1"].User1.PendingAction; got != game.ActionPunch {
		t.Fatalf("stored action must not change, got %q", got)
	}
}

func TestSubmitAction_InvalidAction(t *testing.T) {
	repo := newMockRepo()
	seedActiveSession(repo, "s1")

	_, _, err := SubmitAction(repo, "s1", "w1", "headbutt", &scriptedRand{}, 0)
	if !errors.Is(err, engine.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestSubmitAction_NotParticipant(t *testing.T) {
	repo := newMockRepo()
	seedActiveSession(repo, "s1")

	_, _, err := SubmitAction(repo, "s1", "intruder", game.ActionPunch, &scriptedRand{}, 0)
	if !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSubmitAction_UnknownSession(t *testing.T) {
	repo := newMockRepo()

	_, _, err := SubmitAction(repo, "missing", "w1", game.ActionPunch, &scriptedRand{}, 0)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSubmitAction_RejectedWhileWaiting(t *testing.T) {
	repo := newMockRepo()
	s := seedActiveSession(repo, "s1")
	s.Status = game.StatusWaiting
	s.User2 = game.Combatant{}
	s.User1.WalletAddress = "w1"

	_, _, err := SubmitAction(repo, "s1", "w1", game.ActionPunch, &scriptedRand{}, 0)
	if !errors.Is(err, ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
}

func TestSubmitAction_KOCompletesBattle(t *testing.T) {
	repo := newMockRepo()
	s := seedActiveSession(repo, "s1")
	s.User2.Health = 2
	s.ActionDeadline = time.Now().Add(time.Minute)

	rng := &scriptedRand{vals: []float64{0.9, 0.9}}
	if _, _, err := SubmitAction(repo, "s1", "w1", game.ActionPunch, rng, time.Minute); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	got, resolved, err := SubmitAction(repo, "s1", "w2", game.ActionPunch, rng, time.Minute)
	if err != nil || !resolved {
		t.Fatalf("resolution: resolved=%v err=%v", resolved, err)
	}
	if got.User2.Health != 0 {
		t.Fatalf("expected KO at 0 health, got %d", got.User2.Health)
	}
	if got.Status != game.StatusCompleted {
		t.Fatalf("expected completed, got %q", got.Status)
	}
	if got.Winner != "w1" {
		t.Fatalf("expected w1 as winner, got %q", got.Winner)
	}
	if !got.ActionDeadline.IsZero() {
		t.Fatal("turn timer must stop when the battle ends")
	}
	if repo.statsCalls != 1 || repo.fledWallet != "" {
		t.Fatalf("expected one stats update with no fled wallet, got calls=%d fled=%q", repo.statsCalls, repo.fledWallet)
	}
	if !got.StatsCounted {
		t.Fatal("stats must be marked counted to stay idempotent")
	}
}

func TestSubmitAction_DoubleKOIsDraw(t *testing.T) {
	repo := newMockRepo()
	s := seedActiveSession(repo, "s1")
	s.User1.Health = 1
	s.User2.Health = 1

	rng := &scriptedRand{vals: []float64{0.9, 0.9}}
	if _, _, err := SubmitAction(repo, "s1", "w1", game.ActionPunch, rng, 0); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	got, resolved, err := SubmitAction(repo, "s1", "w2", game.ActionPunch, rng, 0)
	if err != nil || !resolved {
		t.Fatalf("resolution: resolved=%v err=%v", resolved, err)
	}
	if got.User1.Health != 0 || got.User2.Health != 0 {
		t.Fatalf("expected mutual KO, got %d/%d", got.User1.Health, got.User2.Health)
	}
	if got.Status != game.StatusCompleted || got.Winner != "" {
		t.Fatalf("double KO must complete with no winner, got status=%q winner=%q", got.Status, got.Winner)
	}
}

func TestSubmitAction_ResetsDeadlineBetweenRounds(t *testing.T) {
	repo := newMockRepo()
	s := seedActiveSession(repo, "s1")
	s.ActionDeadline = time.Now().Add(time.Second)

	rng := &scriptedRand{vals: []float64{0.9}}
	if _, _, err := SubmitAction(repo, "s1", "w1", game.ActionPunch, rng, time.Minute); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	got, _, err := SubmitAction(repo, "s1", "w2", game.ActionBlock, rng, time.Minute)
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if got.Status != game.StatusActive {
		t.Fatalf("expected active, got %q", got.Status)
	}
	if !got.ActionDeadline.After(time.Now().Add(30 * time.Second)) {
		t.Fatalf("expected a fresh deadline roughly a minute out, got %v", got.ActionDeadline)
	}
}
