package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"polymarket-wrapped/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) UpsertPinCode(ctx context.Context, item *models.PinCode) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"address",
			"expires_at",
		}),
	}).Create(item).Error
}

func (s *Store) GetPinCodeByCode(ctx context.Context, code string) (*models.PinCode, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var item models.PinCode
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) DeletePinCode(ctx context.Context, code string) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Where("code = ?", code).Delete(&models.PinCode{}).Error
}

func (s *Store) DeleteExpiredPinCodes(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.PinCode{})
	return res.RowsAffected, res.Error
}

func (s *Store) InsertMintRecord(ctx context.Context, item *models.MintRecord) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListMintRecordsByAddress(ctx context.Context, address string, limit int) ([]models.MintRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var items []models.MintRecord
	err := s.db.WithContext(ctx).
		Where("address = ?", strings.TrimSpace(address)).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
