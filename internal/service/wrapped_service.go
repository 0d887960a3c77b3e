package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"go.uber.org/zap"

	"polymarket-wrapped/internal/client/polymarket/gamma"
	"polymarket-wrapped/internal/wrapped"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrNoTradingData  = errors.New("no trading data found")
)

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// TradeSource provides an account's raw trading history.
type TradeSource interface {
	ListTrades(ctx context.Context, address string, limit int) ([]wrapped.Trade, error)
	ListPositions(ctx context.Context, address string) ([]wrapped.Position, error)
}

// MarketCatalog resolves market metadata for category backfill. A
// (nil, nil) result means the market is unknown upstream.
type MarketCatalog interface {
	GetMarket(ctx context.Context, marketID string) (*gamma.Market, error)
}

type WrappedService struct {
	Source  TradeSource
	Catalog MarketCatalog
	Logger  *zap.Logger

	Year             int
	FetchLimit       int
	TradeLimit       int
	PositionLimit    int
	EnrichCategories bool
	MaxMarketLookups int
}

// Generate builds the full wrapped report for one address. The stats
// are computed over every fetched trade; only the trade and position
// lists in the envelope are truncated.
func (s *WrappedService) Generate(ctx context.Context, address string) (*wrapped.Report, error) {
	if !addressPattern.MatchString(address) {
		return nil, ErrInvalidAddress
	}

	fetchLimit := s.FetchLimit
	if fetchLimit <= 0 {
		fetchLimit = 1000
	}

	var (
		wg        sync.WaitGroup
		trades    []wrapped.Trade
		positions []wrapped.Position
		tradesErr error
		posErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		trades, tradesErr = s.Source.ListTrades(ctx, address, fetchLimit)
	}()
	go func() {
		defer wg.Done()
		positions, posErr = s.Source.ListPositions(ctx, address)
	}()
	wg.Wait()
	if tradesErr != nil {
		return nil, fmt.Errorf("fetch trades: %w", tradesErr)
	}
	if posErr != nil {
		return nil, fmt.Errorf("fetch positions: %w", posErr)
	}
	if len(trades) == 0 {
		return nil, ErrNoTradingData
	}

	if s.EnrichCategories && s.Catalog != nil {
		s.enrichCategories(ctx, trades)
	}

	annotated := wrapped.AssignRealizedPnL(trades)
	stats := wrapped.Compute(annotated, positions)

	tradeLimit := s.TradeLimit
	if tradeLimit <= 0 {
		tradeLimit = 100
	}
	positionLimit := s.PositionLimit
	if positionLimit <= 0 {
		positionLimit = 20
	}
	if len(annotated) > tradeLimit {
		annotated = annotated[:tradeLimit]
	}
	if len(positions) > positionLimit {
		positions = positions[:positionLimit]
	}

	year := s.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	return &wrapped.Report{
		Address:     address,
		Year:        year,
		Stats:       stats,
		Trades:      annotated,
		Positions:   positions,
		GeneratedAt: time.Now().UnixMilli(),
	}, nil
}

// enrichCategories backfills empty trade categories from market
// metadata. Lookup failures are soft; the aggregator falls back to
// the default category for anything still blank.
func (s *WrappedService) enrichCategories(ctx context.Context, trades []wrapped.Trade) {
	maxLookups := s.MaxMarketLookups
	if maxLookups <= 0 {
		maxLookups = 50
	}
	cache := make(map[string]string)
	lookups := 0
	for i := range trades {
		if trades[i].Category != "" || trades[i].Market == "" {
			continue
		}
		category, seen := cache[trades[i].Market]
		if !seen {
			if lookups >= maxLookups {
				continue
			}
			lookups++
			market, err := s.Catalog.GetMarket(ctx, trades[i].Market)
			if err != nil {
				if s.Logger != nil {
					s.Logger.Warn("market lookup failed",
						zap.String("market", trades[i].Market), zap.Error(err))
				}
				cache[trades[i].Market] = ""
				continue
			}
			if market != nil {
				category = market.Category
			}
			cache[trades[i].Market] = category
		}
		if category != "" {
			trades[i].Category = category
		}
	}
}
