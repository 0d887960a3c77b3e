package data

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"polymarket-wrapped/internal/wrapped"
)

// Decimal accepts string, number, or null numeric fields. Missing or
// malformed values decode to zero so they never reach the core as NaN.
type Decimal struct {
	decimal.Decimal
}

func (d *Decimal) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Decimal = decimal.Zero
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		val, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			d.Decimal = decimal.Zero
			return nil
		}
		d.Decimal = val
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		d.Decimal = decimal.NewFromFloat(f)
		return nil
	}
	return fmt.Errorf("invalid decimal: %s", string(b))
}

// Timestamp normalizes the provider's mixed timestamp encodings
// (epoch seconds, epoch millis, numeric strings, RFC3339 strings) to
// epoch milliseconds. Unparseable values decode to zero.
type Timestamp struct {
	Millis int64
}

// Epoch values at or above this threshold are already milliseconds.
const millisThreshold = int64(1e12)

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == `""` {
		t.Millis = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		t.Millis = normalizeEpoch(int64(f))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		s = strings.TrimSpace(s)
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			t.Millis = parsed.UnixMilli()
			return nil
		}
		if v, err := decimal.NewFromString(s); err == nil {
			t.Millis = normalizeEpoch(v.IntPart())
			return nil
		}
	}
	t.Millis = 0
	return nil
}

func normalizeEpoch(v int64) int64 {
	if v <= 0 {
		return 0
	}
	if v < millisThreshold {
		return v * 1000
	}
	return v
}

type rawTrade struct {
	ID          string    `json:"id"`
	Market      string    `json:"market"`
	AssetID     string    `json:"asset_id"`
	MarketTitle string    `json:"market_title"`
	Side        string    `json:"side"`
	Outcome     string    `json:"outcome"`
	Price       Decimal   `json:"price"`
	Size        Decimal   `json:"size"`
	Timestamp   Timestamp `json:"timestamp"`
	Category    string    `json:"category"`
	MarketImage string    `json:"market_image"`
}

func (r rawTrade) toDomain() wrapped.Trade {
	market := r.Market
	if market == "" {
		market = r.AssetID
	}
	id := r.ID
	if id == "" {
		id = fmt.Sprintf("%s-%d", market, r.Timestamp.Millis)
	}
	title := r.MarketTitle
	if title == "" {
		title = "Unknown Market"
	}
	outcome := r.Outcome
	if outcome == "" {
		outcome = "Yes"
	}
	return wrapped.Trade{
		ID:          id,
		Market:      market,
		MarketTitle: title,
		Side:        wrapped.Side(strings.ToLower(r.Side)),
		Outcome:     outcome,
		Price:       r.Price.InexactFloat64(),
		Size:        r.Size.InexactFloat64(),
		Timestamp:   r.Timestamp.Millis,
		Category:    r.Category,
		MarketImage: r.MarketImage,
	}
}

type rawPosition struct {
	Market       string  `json:"market"`
	AssetID      string  `json:"asset_id"`
	MarketTitle  string  `json:"market_title"`
	Outcome      string  `json:"outcome"`
	Size         Decimal `json:"size"`
	AveragePrice Decimal `json:"average_price"`
	CurrentPrice Decimal `json:"current_price"`
	PnL          Decimal `json:"pnl"`
	Category     string  `json:"category"`
}

func (r rawPosition) toDomain() wrapped.Position {
	marketID := r.Market
	if marketID == "" {
		marketID = r.AssetID
	}
	title := r.MarketTitle
	if title == "" {
		title = "Unknown Market"
	}
	outcome := r.Outcome
	if outcome == "" {
		outcome = "Yes"
	}
	return wrapped.Position{
		MarketID:     marketID,
		MarketTitle:  title,
		Outcome:      outcome,
		Size:         r.Size.InexactFloat64(),
		AveragePrice: r.AveragePrice.InexactFloat64(),
		CurrentPrice: r.CurrentPrice.InexactFloat64(),
		PnL:          r.PnL.InexactFloat64(),
		Category:     r.Category,
	}
}
