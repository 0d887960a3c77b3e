package wrapped

// Side is the direction of a fill.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Trade is one executed fill as delivered by the data provider.
// Values are immutable once received; AssignRealizedPnL returns
// annotated copies instead of mutating inputs.
type Trade struct {
	ID          string   `json:"id"`
	Market      string   `json:"market"`
	MarketTitle string   `json:"marketTitle"`
	Side        Side     `json:"side"`
	Outcome     string   `json:"outcome"`
	Price       float64  `json:"price"`
	Size        float64  `json:"size"`
	Timestamp   int64    `json:"timestamp"` // epoch milliseconds
	PnL         *float64 `json:"pnl,omitempty"`
	Category    string   `json:"category,omitempty"`
	MarketImage string   `json:"marketImage,omitempty"`
}

// Position is the upstream position snapshot. It is carried through
// the report envelope for consumers; realized-PnL accounting does not
// read it.
type Position struct {
	MarketID     string  `json:"marketId"`
	MarketTitle  string  `json:"marketTitle"`
	Outcome      string  `json:"outcome"`
	Size         float64 `json:"size"`
	AveragePrice float64 `json:"averagePrice"`
	CurrentPrice float64 `json:"currentPrice"`
	PnL          float64 `json:"pnl"`
	Category     string  `json:"category,omitempty"`
}

// CategoryStat is one market-category rollup.
type CategoryStat struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Volume   float64 `json:"volume"`
}

// MonthlyStat is one YYYY-MM activity bucket.
type MonthlyStat struct {
	Month  string  `json:"month"`
	Trades int     `json:"trades"`
	Volume float64 `json:"volume"`
	PnL    float64 `json:"pnl"`
}

// MarketActivity names the market with the most fills.
type MarketActivity struct {
	MarketTitle string `json:"marketTitle"`
	Trades      int    `json:"trades"`
}

// TradingStats is the aggregate result of one computation. It is
// constructed once and never mutated afterwards.
type TradingStats struct {
	TotalTrades        int             `json:"totalTrades"`
	TotalVolume        float64         `json:"totalVolume"`
	TotalPnL           float64         `json:"totalPnL"`
	WinRate            float64         `json:"winRate"`
	BestTrade          *Trade          `json:"bestTrade"`
	WorstTrade         *Trade          `json:"worstTrade"`
	FavoriteCategories []CategoryStat  `json:"favoriteCategories"`
	MonthlyActivity    []MonthlyStat   `json:"monthlyActivity"`
	TradingPersona     Persona         `json:"tradingPersona"`
	UniqueMarkets      int             `json:"uniqueMarkets"`
	AverageTradeSize   float64         `json:"averageTradeSize"`
	LongestWinStreak   int             `json:"longestWinStreak"`
	LongestLossStreak  int             `json:"longestLossStreak"`
	TotalWins          int             `json:"totalWins"`
	TotalLosses        int             `json:"totalLosses"`
	FirstTradeDate     int64           `json:"firstTradeDate"`
	LastTradeDate      int64           `json:"lastTradeDate"`
	MostTradedMarket   *MarketActivity `json:"mostTradedMarket"`
}

// Report is the serializable snapshot handed to presentation and
// export consumers. None of them re-derive statistics.
type Report struct {
	Address     string       `json:"address"`
	Year        int          `json:"year"`
	Stats       TradingStats `json:"stats"`
	Trades      []Trade      `json:"trades"`
	Positions   []Position   `json:"positions"`
	GeneratedAt int64        `json:"generatedAt"`
}
