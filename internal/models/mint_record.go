package models

import (
	"time"

	"gorm.io/datatypes"
)

// MintRecord is one published badge-metadata receipt: the pinned token
// URI plus the metadata document that was pinned.
type MintRecord struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	Address  string `gorm:"type:varchar(64);not null;index"`
	Year     int    `gorm:"not null"`
	TokenURI string `gorm:"type:text;not null"`

	Metadata datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
}

func (MintRecord) TableName() string {
	return "mint_records"
}
