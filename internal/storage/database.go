package storage

import (
	"github.com/scribble-arena/server/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenAndMigrate opens the SQLite database at the given path and keeps the
// schema current via AutoMigrate. The returned handle is owned by the caller
// and passed down explicitly; nothing in this package holds global state.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Session{}, &game.WalletStats{}); err != nil {
		return nil, err
	}
	return db, nil
}
