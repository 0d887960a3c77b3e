package db

import (
	"polymarket-wrapped/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil {
		return nil
	}
	return db.Gorm.AutoMigrate(
		&models.PinCode{},
		&models.MintRecord{},
	)
}
