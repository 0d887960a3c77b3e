package gamma

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Market is the metadata subset the service reads from Gamma.
type Market struct {
	ID        string
	Question  string
	Category  string
	Outcomes  []string
	Volume    float64
	Liquidity float64
	Image     string
}

type rawMarket struct {
	ID        string       `json:"id"`
	Question  string       `json:"question"`
	Category  string       `json:"category"`
	Outcomes  outcomesList `json:"outcomes"`
	Volume    flexFloat    `json:"volume"`
	Liquidity flexFloat    `json:"liquidity"`
	Image     string       `json:"image"`
}

func (r rawMarket) toDomain(fallbackID string) Market {
	id := r.ID
	if id == "" {
		id = fallbackID
	}
	question := r.Question
	if question == "" {
		question = "Unknown Market"
	}
	category := r.Category
	if category == "" {
		category = "Other"
	}
	outcomes := []string(r.Outcomes)
	if len(outcomes) == 0 {
		outcomes = []string{"Yes", "No"}
	}
	return Market{
		ID:        id,
		Question:  question,
		Category:  category,
		Outcomes:  outcomes,
		Volume:    float64(r.Volume),
		Liquidity: float64(r.Liquidity),
		Image:     r.Image,
	}
}

// outcomesList tolerates both a JSON array and Gamma's JSON-encoded
// string form ("[\"Yes\",\"No\"]").
type outcomesList []string

func (o *outcomesList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*o = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		var nested []string
		if err := json.Unmarshal([]byte(s), &nested); err == nil {
			*o = nested
			return nil
		}
	}
	*o = nil
	return nil
}

// flexFloat parses string-or-number numerics, defaulting to zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if d, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil {
			*f = flexFloat(d.InexactFloat64())
			return nil
		}
	}
	*f = 0
	return nil
}
