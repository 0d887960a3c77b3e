package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"polymarket-wrapped/internal/models"
	"polymarket-wrapped/internal/repository"
)

var ErrPinCodeNotFound = errors.New("invalid or expired pin code")

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type PinCodeService struct {
	Repo   repository.Repository
	Logger *zap.Logger

	Length int
	TTL    time.Duration
}

// Generate issues a short share code for the address. Re-generating
// for the same code value overwrites the previous owner, which is
// acceptable for the collision odds at six characters.
func (s *PinCodeService) Generate(ctx context.Context, address string) (*models.PinCode, error) {
	if !addressPattern.MatchString(address) {
		return nil, ErrInvalidAddress
	}
	length := s.Length
	if length <= 0 {
		length = 6
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	code, err := randomCode(length)
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}
	pin := &models.PinCode{
		Code:      code,
		Address:   strings.ToLower(address),
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := s.Repo.UpsertPinCode(ctx, pin); err != nil {
		return nil, fmt.Errorf("store pin code: %w", err)
	}
	return pin, nil
}

// Resolve maps a code back to its address. Expired codes are deleted
// on sight and reported the same as unknown ones.
func (s *PinCodeService) Resolve(ctx context.Context, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrPinCodeNotFound
	}
	pin, err := s.Repo.GetPinCodeByCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("load pin code: %w", err)
	}
	if pin == nil {
		return "", ErrPinCodeNotFound
	}
	if pin.ExpiresAt.Before(time.Now().UTC()) {
		if err := s.Repo.DeletePinCode(ctx, code); err != nil && s.Logger != nil {
			s.Logger.Warn("failed to delete expired pin code",
				zap.String("code", code), zap.Error(err))
		}
		return "", ErrPinCodeNotFound
	}
	return pin.Address, nil
}

// PurgeExpired removes all codes past their expiry. Called from cron.
func (s *PinCodeService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.Repo.DeleteExpiredPinCodes(ctx, time.Now().UTC())
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
