package db

import (
	"toolhub/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Tool{},
		&models.SyncState{},
		&models.SourceState{},
	)
}
