package wrapped

// Persona is a categorical label summarizing trading behavior.
type Persona struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
	Emoji       string   `json:"emoji"`
}

// Features is the classifier input vector, derived from one
// TradingStats computation.
type Features struct {
	TotalTrades      int
	TotalVolume      float64
	WinRate          float64
	AverageTradeSize float64
	TotalPnL         float64
}

var (
	Whale = Persona{
		Type:        "Whale",
		Description: "You move markets with your massive trades",
		Traits:      []string{"High Volume", "Large Positions", "Market Mover"},
		Emoji:       "🐋",
	}
	DayTrader = Persona{
		Type:        "Day Trader",
		Description: "You live for the thrill of constant trading",
		Traits:      []string{"High Frequency", "Active", "Quick Moves"},
		Emoji:       "⚡",
	}
	StrategicInvestor = Persona{
		Type:        "Strategic Investor",
		Description: "You pick your spots carefully and win consistently",
		Traits:      []string{"High Win Rate", "Calculated", "Patient"},
		Emoji:       "🎯",
	}
	DegenTrader = Persona{
		Type:        "Degen Trader",
		Description: "You bet big and live on the edge",
		Traits:      []string{"High Risk", "Bold", "Aggressive"},
		Emoji:       "🎲",
	}
	RiskTaker = Persona{
		Type:        "Risk Taker",
		Description: "You take chances others wouldn't dare",
		Traits:      []string{"Fearless", "Persistent", "Ambitious"},
		Emoji:       "🔥",
	}
	HODLKing = Persona{
		Type:        "HODL King",
		Description: "You believe in your positions and hold strong",
		Traits:      []string{"Patient", "Conviction", "Long-term"},
		Emoji:       "💎",
	}
	MarketMaven = Persona{
		Type:        "Market Maven",
		Description: "You know the markets inside and out",
		Traits:      []string{"Knowledgeable", "Diverse", "Experienced"},
		Emoji:       "🧠",
	}
	// CautiousBettor is reserved for the zero-trade sentinel and is
	// never produced by the rule table.
	CautiousBettor = Persona{
		Type:        "Cautious Bettor",
		Description: "Just getting started",
		Traits:      []string{"New", "Learning", "Careful"},
		Emoji:       "🌱",
	}
)

// personaRule couples one predicate with the persona it selects.
type personaRule struct {
	match   func(Features) bool
	persona Persona
}

// personaRules is evaluated top to bottom and the first match wins.
// The slice order IS the classification priority; reordering entries
// changes outcomes.
var personaRules = []personaRule{
	{func(f Features) bool { return f.TotalVolume > 100000 && f.AverageTradeSize > 2000 }, Whale},
	{func(f Features) bool { return f.TotalTrades > 200 }, DayTrader},
	{func(f Features) bool { return f.WinRate > 0.65 && f.TotalTrades > 20 }, StrategicInvestor},
	{func(f Features) bool { return f.AverageTradeSize > 3000 && f.TotalTrades > 50 }, DegenTrader},
	{func(f Features) bool { return f.TotalPnL < -1000 && f.TotalTrades > 30 }, RiskTaker},
	{func(f Features) bool { return f.TotalTrades < 20 && f.TotalVolume > 10000 }, HODLKing},
}

// Classify maps a feature vector to exactly one persona. Total and
// deterministic; MarketMaven is the fallthrough when no rule matches.
func Classify(f Features) Persona {
	for _, rule := range personaRules {
		if rule.match(f) {
			return rule.persona
		}
	}
	return MarketMaven
}
