package repository

import (
	"context"
	"time"

	"polymarket-wrapped/internal/models"
)

// Repository is the persistence surface of the service: the pin-code
// share store and published badge receipts. Computed statistics are
// never stored.
type Repository interface {
	UpsertPinCode(ctx context.Context, item *models.PinCode) error
	GetPinCodeByCode(ctx context.Context, code string) (*models.PinCode, error)
	DeletePinCode(ctx context.Context, code string) error
	DeleteExpiredPinCodes(ctx context.Context, before time.Time) (int64, error)

	InsertMintRecord(ctx context.Context, item *models.MintRecord) error
	ListMintRecordsByAddress(ctx context.Context, address string, limit int) ([]models.MintRecord, error)
}
