package service

import (
	"errors"
	"testing"

	"github.com/scribble-arena/server/internal/game"
)

func TestFlee(t *testing.T) {
	repo := newMockRepo()
	seedActiveSession(repo, "s1")

	s, err := Flee(repo, "s1", "w2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != game.StatusCompleted {
		t.Fatalf("expected completed, got %q", s.Status)
	}
	if s.Winner != "w1" {
		t.Fatalf("opponent of the fleeing side wins, got %q", s.Winner)
	}
	if s.User1.PendingAction != game.ActionNone || s.User2.PendingAction != game.ActionNone {
		t.Fatal("pending actions must be cleared on flee")
	}
	if repo.statsCalls != 1 || repo.fledWallet != "w2" {
		t.Fatalf("expected one stats update recording the fled wallet, got calls=%d fled=%q", repo.statsCalls, repo.fledWallet)
	}
}

func TestFlee_Errors(t *testing.T) {
	repo := newMockRepo()
	s := seedActiveSession(repo, "s1")

	if _, err := Flee(repo, "missing", "w1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := Flee(repo, "s1", "intruder"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	s.Status = game.StatusCompleted
	if _, err := Flee(repo, "s1", "w1"); !errors.Is(err, ErrSessionNotActive) {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
}

func TestRecordWinnerChoice(t *testing.T) {
	repo := newMockRepo()
	s := seedActiveSession(repo, "s1")
	s.Status = game.StatusCompleted
	s.Winner = "w1"

	got, err := RecordWinnerChoice(repo, "s1", "w1", game.ChoiceSpare)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WinnerChoice != game.ChoiceSpare {
		t.Fatalf("expected spare recorded, got %q", got.WinnerChoice)
	}

	if _, err := RecordWinnerChoice(repo, "s1", "w1", game.ChoiceBurn); !errors.Is(err, ErrChoiceAlreadyMade) {
		t.Fatalf("the choice is recorded exactly once, got %v", err)
	}
}

func TestRecordWinnerChoice_Errors(t *testing.T) {
	repo := newMockRepo()
	s := seedActiveSession(repo, "s1")

	if _, err := RecordWinnerChoice(repo, "s1", "w1", "maim"); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
	if _, err := RecordWinnerChoice(repo, "s1", "w1", game.ChoiceSpare); !errors.Is(err, ErrBattleNotCompleted) {
		t.Fatalf("expected ErrBattleNotCompleted, got %v", err)
	}

	s.Status = game.StatusCompleted
	if _, err := RecordWinnerChoice(repo, "s1", "w1", game.ChoiceSpare); !errors.Is(err, ErrNoWinner) {
		t.Fatalf("a draw leaves nobody to choose, got %v", err)
	}

	s.Winner = "w1"
	if _, err := RecordWinnerChoice(repo, "s1", "w2", game.ChoiceBurn); !errors.Is(err, ErrNotWinner) {
		t.Fatalf("expected ErrNotWinner, got %v", err)
	}
}
