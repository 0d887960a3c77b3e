package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"polymarket-wrapped/internal/models"
)

// stubRepo is an in-memory Repository for service tests.
type stubRepo struct {
	mu    sync.Mutex
	pins  map[string]models.PinCode
	mints []models.MintRecord

	upsertErr error
	getErr    error
}

func newStubRepo() *stubRepo {
	return &stubRepo{pins: make(map[string]models.PinCode)}
}

func (r *stubRepo) UpsertPinCode(_ context.Context, item *models.PinCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.pins[strings.ToUpper(item.Code)] = *item
	return nil
}

func (r *stubRepo) GetPinCodeByCode(_ context.Context, code string) (*models.PinCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	pin, ok := r.pins[strings.ToUpper(code)]
	if !ok {
		return nil, nil
	}
	out := pin
	return &out, nil
}

func (r *stubRepo) DeletePinCode(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pins, strings.ToUpper(code))
	return nil
}

func (r *stubRepo) DeleteExpiredPinCodes(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for code, pin := range r.pins {
		if pin.ExpiresAt.Before(before) {
			delete(r.pins, code)
			n++
		}
	}
	return n, nil
}

func (r *stubRepo) InsertMintRecord(_ context.Context, item *models.MintRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = uint64(len(r.mints) + 1)
	r.mints = append(r.mints, *item)
	return nil
}

func (r *stubRepo) ListMintRecordsByAddress(_ context.Context, address string, limit int) ([]models.MintRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.MintRecord
	for i := len(r.mints) - 1; i >= 0; i-- {
		if r.mints[i].Address == address {
			out = append(out, r.mints[i])
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}
