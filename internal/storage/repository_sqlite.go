package storage

import (
	"errors"
	"time"

	"github.com/scribble-arena/server/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// lobbyTTL bounds how long a waiting session stays listed as joinable.
	lobbyTTL time.Duration
}

func NewSQLiteRepository(db *gorm.DB, lobbyTTL time.Duration) Repository {
	return &sqliteRepository{db: db, lobbyTTL: lobbyTTL}
}

// normalizeSession decodes the legacy attribute column into the in-memory
// stat blocks. This is the single place the historic string-vs-object
// formats are handled; everything downstream sees a structured Attributes.
func normalizeSession(s *game.Session) {
	if s.User1.Present() {
		s.User1.Attributes = game.ParseAttributes(s.User1.RawAttributes)
	}
	if s.User2.Present() {
		s.User2.Attributes = game.ParseAttributes(s.User2.RawAttributes)
	}
}

// prepareSession re-encodes the stat blocks for storage so every write
// migrates legacy rows to the object format.
func prepareSession(s *game.Session) {
	if s.User1.Present() {
		s.User1.RawAttributes = game.EncodeAttributes(s.User1.Attributes)
	}
	if s.User2.Present() {
		s.User2.RawAttributes = game.EncodeAttributes(s.User2.Attributes)
	}
}

func (r *sqliteRepository) CreateSession(s *game.Session) error {
	prepareSession(s)
	return r.db.Create(s).Error
}

func (r *sqliteRepository) GetSessionByID(sessionID string) (*game.Session, error) {
	var s game.Session
	if err := r.db.Where("session_id = ?", sessionID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	normalizeSession(&s)
	return &s, nil
}

func (r *sqliteRepository) ListJoinableSessions() ([]game.Session, error) {
	var sessions []game.Session
	cutoff := time.Now().Add(-r.lobbyTTL)
	err := r.db.
		Where("status = ? AND user2_wallet_address = '' AND created_at > ?", game.StatusWaiting, cutoff).
		Order("created_at desc").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		normalizeSession(&sessions[i])
	}
	return sessions, nil
}

func (r *sqliteRepository) UpdateSession(s *game.Session) error {
	prepareSession(s)
	return r.db.Save(s).Error
}

func (r *sqliteRepository) DeleteSession(sessionID string) (bool, error) {
	res := r.db.Where("session_id = ?", sessionID).Delete(&game.Session{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func actionColumn(side string) string {
	if side == game.SideUser2 {
		return "user2_pending_action"
	}
	return "user1_pending_action"
}

func (r *sqliteRepository) ClaimPendingAction(sessionID, side string, action game.Action) (*game.Session, bool, bool, error) {
	var out *game.Session
	claimed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		col := actionColumn(side)
		// The claim and the "is my slot empty" check are one statement, so
		// two racing submissions for the same side cannot both succeed.
		res := tx.Model(&game.Session{}).
			Where("session_id = ? AND status = ? AND "+col+" = ''", sessionID, game.StatusActive).
			Update(col, string(action))
		if res.Error != nil {
			return res.Error
		}
		claimed = res.RowsAffected > 0

		var s game.Session
		if err := tx.Where("session_id = ?", sessionID).First(&s).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				out = nil
				return nil
			}
			return err
		}
		normalizeSession(&s)
		out = &s
		return nil
	})
	if err != nil {
		return nil, false, false, err
	}
	both := claimed && out != nil && out.BothActionsPresent()
	return out, claimed, both, nil
}

func (r *sqliteRepository) FinishRound(s *game.Session, a1, a2 game.Action) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var current game.Session
		if err := tx.Where("session_id = ?", s.SessionID).First(&current).Error; err != nil {
			return err
		}
		if current.User1.PendingAction != a1 || current.User2.PendingAction != a2 {
			// Someone else already cleared this round.
			return nil
		}
		prepareSession(s)
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

func (r *sqliteRepository) UpsertWallet(address string) error {
	var ws game.WalletStats
	if err := r.db.Where("wallet_address = ?", address).First(&ws).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.Create(&game.WalletStats{WalletAddress: address}).Error
		}
		return err
	}
	return nil
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(s *game.Session, fledWallet string) error {
	upsert := func(address string, played, wins, flees int) error {
		if address == "" {
			return nil
		}
		var ws game.WalletStats
		if err := r.db.Where("wallet_address = ?", address).First(&ws).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ws = game.WalletStats{WalletAddress: address}
			} else {
				return err
			}
		}
		ws.BattlesPlayed += played
		ws.Wins += wins
		ws.Flees += flees
		return r.db.Save(&ws).Error
	}
	if err := upsert(s.User1.WalletAddress, 1, 0, 0); err != nil {
		return err
	}
	if err := upsert(s.User2.WalletAddress, 1, 0, 0); err != nil {
		return err
	}
	if s.Winner != "" {
		if err := upsert(s.Winner, 0, 1, 0); err != nil {
			return err
		}
	}
	if fledWallet != "" {
		return upsert(fledWallet, 0, 0, 1)
	}
	return nil
}

func (r *sqliteRepository) GetStatsByWallet(address string) (*game.WalletStats, error) {
	var ws game.WalletStats
	if err := r.db.Where("wallet_address = ?", address).First(&ws).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &game.WalletStats{WalletAddress: address}, nil
		}
		return nil, err
	}
	return &ws, nil
}

func (r *sqliteRepository) GetTopWallets(limit int) ([]game.WalletStats, error) {
	if limit <= 0 {
		limit = 10
	}
	var wallets []game.WalletStats
	err := r.db.Model(&game.WalletStats{}).
		Order("wins DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&wallets).Error
	if err != nil {
		return nil, err
	}
	return wallets, nil
}

func (r *sqliteRepository) FindTimedOutSessions(now time.Time) ([]game.Session, error) {
	var sessions []game.Session
	err := r.db.
		Where("status = ? AND action_deadline > ? AND action_deadline <= ?", game.StatusActive, time.Time{}, now).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		normalizeSession(&sessions[i])
	}
	return sessions, nil
}
