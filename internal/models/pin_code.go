package models

import "time"

// PinCode maps an opaque short code to an account address for share
// links. Expired rows are purged by cron and treated as absent.
type PinCode struct {
	Code      string    `gorm:"primaryKey;type:varchar(12)"`
	Address   string    `gorm:"type:varchar(64);not null;index"`
	ExpiresAt time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (PinCode) TableName() string {
	return "pin_codes"
}
