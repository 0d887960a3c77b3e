package wrapped

import (
	"math/rand"
	"reflect"
	"testing"
)

func catTrade(id, category string, price, size float64, ts int64) Trade {
	t := mkTrade(id, SideBuy, price, size, ts)
	t.Category = category
	t.Market = "m-" + id
	t.MarketTitle = "Market " + id
	return t
}

func TestCompute_EmptySentinel(t *testing.T) {
	stats := Compute(nil, nil)
	if stats.TotalTrades != 0 || stats.WinRate != 0 {
		t.Fatalf("empty stats not zeroed: %+v", stats)
	}
	if stats.BestTrade != nil || stats.WorstTrade != nil {
		t.Fatalf("empty stats must have nil best/worst trades")
	}
	if stats.MostTradedMarket != nil {
		t.Fatalf("empty stats must have nil most traded market")
	}
	if stats.TradingPersona.Type != "Cautious Bettor" {
		t.Fatalf("empty persona = %s, want Cautious Bettor", stats.TradingPersona.Type)
	}
	if stats.FirstTradeDate != 0 || stats.LastTradeDate != 0 {
		t.Fatalf("empty stats timestamps must be zero for determinism")
	}
	if len(stats.FavoriteCategories) != 0 || len(stats.MonthlyActivity) != 0 {
		t.Fatalf("empty stats must have empty rollups")
	}
}

func TestCompute_VolumeAndAverages(t *testing.T) {
	trades := []Trade{
		mkTrade("a", SideBuy, 0.50, 100, 1000), // 50
		mkTrade("b", SideBuy, 0.25, 200, 2000), // 50
		mkTrade("c", SideSell, 0.80, 50, 3000), // 40
	}
	stats := Compute(trades, nil)
	if !floatEq(stats.TotalVolume, 140) {
		t.Fatalf("totalVolume = %v, want 140", stats.TotalVolume)
	}
	if !floatEq(stats.AverageTradeSize, 140.0/3) {
		t.Fatalf("averageTradeSize = %v", stats.AverageTradeSize)
	}
	if stats.TotalTrades != 3 {
		t.Fatalf("totalTrades = %d, want 3", stats.TotalTrades)
	}
	if stats.FirstTradeDate != 1000 || stats.LastTradeDate != 3000 {
		t.Fatalf("first/last = %d/%d", stats.FirstTradeDate, stats.LastTradeDate)
	}
}

func TestCompute_WinRateExcludesBreakEven(t *testing.T) {
	trades := []Trade{
		mkTrade("b1", SideBuy, 0.50, 100, 1000),
		mkTrade("s1", SideSell, 0.80, 50, 2000), // win
		mkTrade("s2", SideSell, 0.50, 25, 3000), // break-even, excluded
		mkTrade("s3", SideSell, 0.40, 25, 4000), // loss
	}
	stats := Compute(trades, nil)
	if stats.TotalWins != 1 || stats.TotalLosses != 1 {
		t.Fatalf("wins/losses = %d/%d, want 1/1", stats.TotalWins, stats.TotalLosses)
	}
	if !floatEq(stats.WinRate, 0.5) {
		t.Fatalf("winRate = %v, want 0.5", stats.WinRate)
	}
	if stats.TotalWins+stats.TotalLosses > stats.TotalTrades {
		t.Fatalf("wins+losses exceed trade count")
	}
}

func TestCompute_WinRateZeroWithoutDecisiveTrades(t *testing.T) {
	trades := []Trade{
		mkTrade("b1", SideBuy, 0.50, 100, 1000),
		mkTrade("b2", SideBuy, 0.60, 100, 2000),
	}
	stats := Compute(trades, nil)
	if stats.WinRate != 0 || stats.TotalWins != 0 || stats.TotalLosses != 0 {
		t.Fatalf("buys only: winRate=%v wins=%d losses=%d", stats.WinRate, stats.TotalWins, stats.TotalLosses)
	}
}

func TestCompute_BestWorstFirstEncounteredWinsTies(t *testing.T) {
	trades := []Trade{
		mkTrade("b1", SideBuy, 0.50, 100, 1000),
		mkTrade("s1", SideSell, 0.60, 10, 2000), // +1
		mkTrade("s2", SideSell, 0.60, 10, 3000), // +1 tie, s1 stays best
		mkTrade("s3", SideSell, 0.40, 10, 4000), // -1
	}
	stats := Compute(trades, nil)
	if stats.BestTrade == nil || stats.BestTrade.ID != "s1" {
		t.Fatalf("bestTrade = %+v, want s1", stats.BestTrade)
	}
	if stats.WorstTrade == nil || stats.WorstTrade.ID != "s3" {
		t.Fatalf("worstTrade = %+v, want s3", stats.WorstTrade)
	}
}

func TestCompute_Streaks(t *testing.T) {
	// Build a +1 +1 -1 +1 +1 +1 realized sequence on one market:
	// repeatedly buy 10 then sell it at a higher/lower price.
	trades := []Trade{}
	ts := int64(0)
	add := func(sign float64) {
		buy := mkTrade("b", SideBuy, 0.50, 10, ts)
		ts += 10
		sellPrice := 0.60
		if sign < 0 {
			sellPrice = 0.40
		}
		sell := mkTrade("s", SideSell, sellPrice, 10, ts)
		ts += 10
		trades = append(trades, buy, sell)
	}
	for _, sign := range []float64{+1, +1, -1, +1, +1, +1} {
		add(sign)
	}
	stats := Compute(trades, nil)
	if stats.LongestWinStreak != 3 {
		t.Fatalf("longestWinStreak = %d, want 3", stats.LongestWinStreak)
	}
	if stats.LongestLossStreak != 1 {
		t.Fatalf("longestLossStreak = %d, want 1", stats.LongestLossStreak)
	}
}

func TestCompute_FavoriteCategories(t *testing.T) {
	trades := []Trade{
		catTrade("a", "Politics", 1, 300, 1000),
		catTrade("b", "Sports", 1, 200, 2000),
		catTrade("c", "Crypto", 1, 100, 3000),
		catTrade("d", "Science", 1, 90, 4000),
		catTrade("e", "Business", 1, 80, 5000),
		catTrade("f", "Climate", 1, 70, 6000),
		catTrade("g", "", 1, 60, 7000), // defaults to Other
	}
	stats := Compute(trades, nil)
	if len(stats.FavoriteCategories) != 5 {
		t.Fatalf("favoriteCategories len = %d, want 5", len(stats.FavoriteCategories))
	}
	if stats.FavoriteCategories[0].Category != "Politics" {
		t.Fatalf("top category = %s, want Politics", stats.FavoriteCategories[0].Category)
	}
	for i := 1; i < len(stats.FavoriteCategories); i++ {
		if stats.FavoriteCategories[i].Volume > stats.FavoriteCategories[i-1].Volume {
			t.Fatalf("categories not sorted by volume desc")
		}
	}
}

func TestCompute_FavoriteCategoriesTieKeepsFirstSeen(t *testing.T) {
	trades := []Trade{
		catTrade("a", "Sports", 1, 100, 1000),
		catTrade("b", "Politics", 1, 100, 2000),
	}
	stats := Compute(trades, nil)
	if stats.FavoriteCategories[0].Category != "Sports" {
		t.Fatalf("tie-break: got %s first, want Sports", stats.FavoriteCategories[0].Category)
	}
}

func TestCompute_CategoryDefaultsToOther(t *testing.T) {
	trades := []Trade{mkTrade("a", SideBuy, 0.5, 10, 1000)}
	stats := Compute(trades, nil)
	if len(stats.FavoriteCategories) != 1 || stats.FavoriteCategories[0].Category != "Other" {
		t.Fatalf("categories = %+v, want single Other bucket", stats.FavoriteCategories)
	}
}

func TestCompute_MonthlyActivityUTC(t *testing.T) {
	// 2025-01-31T23:59:59Z and 2025-02-01T00:00:01Z land in different
	// UTC buckets regardless of the host timezone.
	jan := mkTrade("jan", SideBuy, 0.5, 10, 1738367999000)
	feb := mkTrade("feb", SideBuy, 0.5, 20, 1738368001000)
	stats := Compute([]Trade{jan, feb}, nil)
	if len(stats.MonthlyActivity) != 2 {
		t.Fatalf("monthly buckets = %d, want 2", len(stats.MonthlyActivity))
	}
	if stats.MonthlyActivity[0].Month != "2025-01" || stats.MonthlyActivity[1].Month != "2025-02" {
		t.Fatalf("months = %s/%s", stats.MonthlyActivity[0].Month, stats.MonthlyActivity[1].Month)
	}
	if stats.MonthlyActivity[0].Trades != 1 || !floatEq(stats.MonthlyActivity[0].Volume, 5) {
		t.Fatalf("jan bucket = %+v", stats.MonthlyActivity[0])
	}
}

func TestCompute_MostTradedMarketAndUniqueMarkets(t *testing.T) {
	a1 := mkTrade("a1", SideBuy, 0.5, 10, 1000)
	a2 := mkTrade("a2", SideBuy, 0.5, 10, 2000)
	b1 := mkTrade("b1", SideBuy, 0.5, 10, 3000)
	b1.Market = "m2"
	b1.MarketTitle = "Market Two"
	stats := Compute([]Trade{a1, a2, b1}, nil)
	if stats.UniqueMarkets != 2 {
		t.Fatalf("uniqueMarkets = %d, want 2", stats.UniqueMarkets)
	}
	if stats.MostTradedMarket == nil || stats.MostTradedMarket.MarketTitle != "Market One" {
		t.Fatalf("mostTradedMarket = %+v", stats.MostTradedMarket)
	}
	if stats.MostTradedMarket.Trades != 2 {
		t.Fatalf("mostTradedMarket.Trades = %d, want 2", stats.MostTradedMarket.Trades)
	}
}

func TestCompute_MostTradedMarketTieKeepsFirstSeen(t *testing.T) {
	a := mkTrade("a", SideBuy, 0.5, 10, 1000)
	b := mkTrade("b", SideBuy, 0.5, 10, 2000)
	b.Market = "m2"
	b.MarketTitle = "Market Two"
	stats := Compute([]Trade{a, b}, nil)
	if stats.MostTradedMarket.MarketTitle != "Market One" {
		t.Fatalf("tie-break: got %s, want Market One", stats.MostTradedMarket.MarketTitle)
	}
}

func TestCompute_OrderIndependence(t *testing.T) {
	trades := []Trade{
		mkTrade("b1", SideBuy, 0.40, 100, 1000),
		mkTrade("b2", SideBuy, 0.60, 100, 2000),
		mkTrade("s1", SideSell, 0.70, 150, 3000),
		mkTrade("s2", SideSell, 0.30, 50, 4000),
		catTrade("c1", "Sports", 0.5, 40, 5000),
	}
	want := Compute(trades, nil)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := make([]Trade, len(trades))
		copy(shuffled, trades)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Compute(shuffled, nil)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("shuffle %d changed the result:\n got %+v\nwant %+v", i, got, want)
		}
	}
}

func TestCompute_TotalPnLMatchesLedger(t *testing.T) {
	trades := []Trade{
		mkTrade("b", SideBuy, 0.50, 100, 1000),
		mkTrade("s", SideSell, 0.80, 100, 2000),
	}
	stats := Compute(trades, nil)
	if !floatEq(stats.TotalPnL, 30) {
		t.Fatalf("totalPnL = %v, want 30", stats.TotalPnL)
	}
}
