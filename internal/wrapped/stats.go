package wrapped

import (
	"sort"
	"time"
)

const maxFavoriteCategories = 5

// Compute turns an unordered trade collection plus the raw position
// snapshot into one TradingStats value. Pure and total: well-formed
// numeric input never produces an error, and an empty trade list
// yields the zero/null sentinel instead. Because trades are
// re-sorted internally, any permutation of the same input produces an
// identical result.
func Compute(trades []Trade, positions []Position) TradingStats {
	if len(trades) == 0 {
		return EmptyStats()
	}

	annotated := AssignRealizedPnL(trades)

	var totalVolume, totalPnL float64
	for _, t := range annotated {
		totalVolume += t.Price * t.Size
		if t.PnL != nil {
			totalPnL += *t.PnL
		}
	}

	wins, losses, rate := winLossRate(annotated)
	best, worst := bestWorstTrades(annotated)

	unique := make(map[string]struct{}, len(annotated))
	for _, t := range annotated {
		unique[t.Market] = struct{}{}
	}

	averageTradeSize := totalVolume / float64(len(annotated))
	longestWin, longestLoss := streaks(annotated)

	return TradingStats{
		TotalTrades:        len(annotated),
		TotalVolume:        totalVolume,
		TotalPnL:           totalPnL,
		WinRate:            rate,
		BestTrade:          best,
		WorstTrade:         worst,
		FavoriteCategories: favoriteCategories(annotated),
		MonthlyActivity:    monthlyActivity(annotated),
		TradingPersona: Classify(Features{
			TotalTrades:      len(annotated),
			TotalVolume:      totalVolume,
			WinRate:          rate,
			AverageTradeSize: averageTradeSize,
			TotalPnL:         totalPnL,
		}),
		UniqueMarkets:     len(unique),
		AverageTradeSize:  averageTradeSize,
		LongestWinStreak:  longestWin,
		LongestLossStreak: longestLoss,
		TotalWins:         wins,
		TotalLosses:       losses,
		FirstTradeDate:    annotated[0].Timestamp,
		LastTradeDate:     annotated[len(annotated)-1].Timestamp,
		MostTradedMarket:  mostTradedMarket(annotated),
	}
}

// EmptyStats is the documented zero-trade sentinel. Timestamps are
// zero so re-invocation stays byte-for-byte reproducible.
func EmptyStats() TradingStats {
	return TradingStats{
		FavoriteCategories: []CategoryStat{},
		MonthlyActivity:    []MonthlyStat{},
		TradingPersona:     CautiousBettor,
	}
}

// winLossRate counts only trades whose PnL is defined and non-zero.
// Break-even trades join neither side nor the denominator.
func winLossRate(trades []Trade) (wins, losses int, rate float64) {
	for _, t := range trades {
		if t.PnL == nil || *t.PnL == 0 {
			continue
		}
		if *t.PnL > 0 {
			wins++
		} else {
			losses++
		}
	}
	if wins+losses > 0 {
		rate = float64(wins) / float64(wins+losses)
	}
	return wins, losses, rate
}

// bestWorstTrades picks arg-max and arg-min PnL over PnL-defined
// trades in a single left fold, so the first of equal extremes wins.
func bestWorstTrades(trades []Trade) (best, worst *Trade) {
	for _, t := range trades {
		if t.PnL == nil {
			continue
		}
		if best == nil || *t.PnL > *best.PnL {
			c := t
			best = &c
		}
		if worst == nil || *t.PnL < *worst.PnL {
			c := t
			worst = &c
		}
	}
	return best, worst
}

func favoriteCategories(trades []Trade) []CategoryStat {
	index := make(map[string]int, len(trades))
	stats := make([]CategoryStat, 0, 8)
	for _, t := range trades {
		category := t.Category
		if category == "" {
			category = "Other"
		}
		i, ok := index[category]
		if !ok {
			i = len(stats)
			index[category] = i
			stats = append(stats, CategoryStat{Category: category})
		}
		stats[i].Count++
		stats[i].Volume += t.Price * t.Size
	}
	// Stable sort keeps first-seen order for equal volumes.
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Volume > stats[j].Volume
	})
	if len(stats) > maxFavoriteCategories {
		stats = stats[:maxFavoriteCategories]
	}
	return stats
}

// monthlyActivity buckets by YYYY-MM derived in UTC so the rollup is
// reproducible across environments.
func monthlyActivity(trades []Trade) []MonthlyStat {
	buckets := make(map[string]*MonthlyStat)
	for _, t := range trades {
		month := time.UnixMilli(t.Timestamp).UTC().Format("2006-01")
		b := buckets[month]
		if b == nil {
			b = &MonthlyStat{Month: month}
			buckets[month] = b
		}
		b.Trades++
		b.Volume += t.Price * t.Size
		if t.PnL != nil {
			b.PnL += *t.PnL
		}
	}
	out := make([]MonthlyStat, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month < out[j].Month
	})
	return out
}

// streaks walks non-zero-PnL trades in ledger (chronological) order.
// A single qualifying trade starts a streak of length 1.
func streaks(trades []Trade) (longestWin, longestLoss int) {
	var currentWin, currentLoss int
	for _, t := range trades {
		if t.PnL == nil || *t.PnL == 0 {
			continue
		}
		if *t.PnL > 0 {
			currentWin++
			currentLoss = 0
			if currentWin > longestWin {
				longestWin = currentWin
			}
		} else {
			currentLoss++
			currentWin = 0
			if currentLoss > longestLoss {
				longestLoss = currentLoss
			}
		}
	}
	return longestWin, longestLoss
}

func mostTradedMarket(trades []Trade) *MarketActivity {
	if len(trades) == 0 {
		return nil
	}
	counts := make(map[string]int, len(trades))
	order := make([]string, 0, len(trades))
	for _, t := range trades {
		if _, seen := counts[t.MarketTitle]; !seen {
			order = append(order, t.MarketTitle)
		}
		counts[t.MarketTitle]++
	}
	top := &MarketActivity{}
	for _, title := range order {
		if counts[title] > top.Trades {
			top = &MarketActivity{MarketTitle: title, Trades: counts[title]}
		}
	}
	return top
}
