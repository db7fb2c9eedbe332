package game

import (
	"time"

	"gorm.io/gorm"
)

// Action is a per-round combat choice.
// Using a dedicated type instead of plain string makes code safer and self-documenting.
type Action string

const (
	ActionNone   Action = ""
	ActionPunch  Action = "punch"
	ActionKick   Action = "kick"
	ActionBlock  Action = "block"
	ActionCharge Action = "charge"
)

// Valid reports whether a is one of the four playable actions.
func (a Action) Valid() bool {
	switch a {
	case ActionPunch, ActionKick, ActionBlock, ActionCharge:
		return true
	}
	return false
}

// Session status values. Exactly one holds at any time and `completed` is terminal.
const (
	StatusWaiting   = "waiting"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Mercy choices the winner may record once after completion.
const (
	ChoiceNone  = ""
	ChoiceSpare = "spare"
	ChoiceBurn  = "burn"
)

// Side identifiers for the two combatant slots.
const (
	SideUser1 = "user1"
	SideUser2 = "user2"
)

const (
	baseHealth       = 150
	healthPerDefense = 30
)

// MaxHealth derives the starting health pool from the defense attribute.
func MaxHealth(attrs Attributes) int {
	return baseHealth + attrs.Defense*healthPerDefense
}

// Attributes is a combatant's stat block. The creation flow enforces
// attack+defense+speed == 3; stored rows that predate the constraint are
// tolerated as-is.
type Attributes struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

// Combatant is one side of a battle session.
type Combatant struct {
	WalletAddress string `json:"wallet_address"`
	// Image is an opaque avatar reference produced by the drawing UI. The
	// server stores and returns it without ever inspecting the contents.
	Image string `json:"image" gorm:"type:text"`
	// RawAttributes holds the persisted attribute payload. Historic rows
	// stored a JSON-encoded string instead of an object, so the column
	// stays text and is decoded through ParseAttributes on read only.
	RawAttributes string     `json:"-" gorm:"column:attributes;type:text"`
	Attributes    Attributes `json:"attributes" gorm:"-"`
	Health        int        `json:"health"`
	PendingAction Action     `json:"pending_action"`
	// Charged is set when a CHARGE action succeeds and cleared when the
	// next landed attack releases the stored power.
	Charged bool `json:"charged"`
}

// Present reports whether this combatant slot is occupied.
func (c *Combatant) Present() bool { return c.WalletAddress != "" }

// Session is the aggregate root for one battle between two players.
type Session struct {
	gorm.Model
	SessionID string    `json:"session_id" gorm:"uniqueIndex"`
	User1     Combatant `json:"user1" gorm:"embedded;embeddedPrefix:user1_"`
	User2     Combatant `json:"user2" gorm:"embedded;embeddedPrefix:user2_"`
	Status    string    `json:"status"`
	// RoundCount is the number of fully resolved rounds.
	RoundCount int `json:"round_count"`
	// Winner holds the winning wallet address once completed. It stays
	// empty for a draw or an inactivity expiry.
	Winner       string `json:"winner"`
	WinnerChoice string `json:"winner_choice"`
	Message      string `json:"message"`
	LastRoundLog string `json:"last_round_log"`
	// ActionDeadline is the optional turn-timer deadline for the current
	// round. The zero value means no timer is running.
	ActionDeadline time.Time `json:"action_deadline"`
	StatsCounted   bool      `json:"-"`
}

func (Session) TableName() string { return "sessions" }

// SideOf returns the slot the wallet occupies, or "" for non-participants.
func (s *Session) SideOf(wallet string) string {
	if wallet == "" {
		return ""
	}
	if s.User1.WalletAddress == wallet {
		return SideUser1
	}
	if s.User2.WalletAddress == wallet {
		return SideUser2
	}
	return ""
}

// CombatantFor returns the combatant occupying the given side.
func (s *Session) CombatantFor(side string) *Combatant {
	if side == SideUser2 {
		return &s.User2
	}
	return &s.User1
}

// OpponentWallet returns the other participant's wallet address.
func (s *Session) OpponentWallet(wallet string) string {
	if s.User1.WalletAddress == wallet {
		return s.User2.WalletAddress
	}
	return s.User1.WalletAddress
}

// BothActionsPresent reports whether both sides have a pending action.
func (s *Session) BothActionsPresent() bool {
	return s.User1.PendingAction != ActionNone && s.User2.PendingAction != ActionNone
}

// WalletStats stores per-wallet aggregate battle results.
type WalletStats struct {
	gorm.Model
	WalletAddress string `json:"wallet_address" gorm:"uniqueIndex"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Flees         int    `json:"flees"`
}

func (WalletStats) TableName() string { return "wallet_stats" }
