package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"polymarket-wrapped/internal/models"
	"polymarket-wrapped/internal/repository"
	"polymarket-wrapped/internal/wrapped"
)

// Pinner uploads a JSON document to content-addressed storage and
// returns its URI. GatewayURL rewrites that URI to an HTTP form.
type Pinner interface {
	PinJSON(ctx context.Context, name string, content any) (string, error)
	GatewayURL(uri string) string
}

type BadgeService struct {
	Repo   repository.Repository
	Pinner Pinner
	Logger *zap.Logger
}

// BadgeMetadata is the ERC-721 token metadata document.
type BadgeMetadata struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Attributes  []BadgeAttribute `json:"attributes"`
}

type BadgeAttribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// BuildMetadata assembles the badge metadata for a report. The image
// field stays empty; the frontend renders and attaches the artwork.
func (s *BadgeService) BuildMetadata(report *wrapped.Report) BadgeMetadata {
	stats := report.Stats
	return BadgeMetadata{
		Name:        fmt.Sprintf("Polymarket Wrapped %d", report.Year),
		Description: fmt.Sprintf("%s's trading summary for %d", report.Address, report.Year),
		Attributes: []BadgeAttribute{
			{TraitType: "Total Trades", Value: stats.TotalTrades},
			{TraitType: "Total Volume", Value: stats.TotalVolume},
			{TraitType: "Net P&L", Value: stats.TotalPnL},
			{TraitType: "Win Rate", Value: fmt.Sprintf("%.1f%%", stats.WinRate*100)},
			{TraitType: "Trading Persona", Value: stats.TradingPersona.Type},
			{TraitType: "Year", Value: report.Year},
		},
	}
}

// ShareText builds the social share blurb for a report.
func (s *BadgeService) ShareText(report *wrapped.Report) string {
	stats := report.Stats
	pnlText := fmt.Sprintf("+$%.0f", stats.TotalPnL)
	if stats.TotalPnL < 0 {
		pnlText = fmt.Sprintf("-$%.0f", math.Abs(stats.TotalPnL))
	}
	return fmt.Sprintf(
		"I'm a %s %s on @Polymarket!\n\n📊 %d trades in %d\n💰 %s P&L\n🎯 %.1f%% win rate\n\nCheck out your Polymarket Wrapped %d!",
		stats.TradingPersona.Emoji, stats.TradingPersona.Type,
		stats.TotalTrades, report.Year,
		pnlText,
		stats.WinRate*100,
		report.Year,
	)
}

// Publish pins the badge metadata and records the mint intent. The
// returned record carries the token URI the mint transaction uses.
func (s *BadgeService) Publish(ctx context.Context, report *wrapped.Report) (*models.MintRecord, error) {
	metadata := s.BuildMetadata(report)
	name := fmt.Sprintf("polymarket-wrapped-%d-%s", report.Year, report.Address)
	uri, err := s.Pinner.PinJSON(ctx, name, metadata)
	if err != nil {
		return nil, fmt.Errorf("pin metadata: %w", err)
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	record := &models.MintRecord{
		Address:  report.Address,
		Year:     report.Year,
		TokenURI: uri,
		Metadata: datatypes.JSON(raw),
	}
	if err := s.Repo.InsertMintRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("store mint record: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Info("badge metadata published",
			zap.String("address", report.Address), zap.String("token_uri", uri))
	}
	return record, nil
}

// Records lists earlier publish receipts for an address, newest first.
func (s *BadgeService) Records(ctx context.Context, address string, limit int) ([]models.MintRecord, error) {
	if !addressPattern.MatchString(address) {
		return nil, ErrInvalidAddress
	}
	return s.Repo.ListMintRecordsByAddress(ctx, address, limit)
}

// MetadataURL returns the HTTP gateway form of a pinned token URI.
func (s *BadgeService) MetadataURL(tokenURI string) string {
	if s.Pinner == nil {
		return tokenURI
	}
	return s.Pinner.GatewayURL(tokenURI)
}
