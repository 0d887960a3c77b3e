package wrapped

import "sort"

// ledgerPosition is the per-(market, outcome) working state of one
// accounting pass. avgPrice is meaningful only while size > 0.
type ledgerPosition struct {
	size     float64
	avgPrice float64
}

// AssignRealizedPnL books a realized profit/loss value onto every
// trade and returns the annotated copies in chronological order. The
// input is sorted by timestamp ascending first (stable on ties, so
// the input order decides the cost basis for equal timestamps) which
// makes the result independent of the order trades arrive in.
//
// A buy re-weights the average entry price and realizes nothing. A
// sell realizes (price - avgPrice) on at most the tracked size; there
// is no short inventory, so selling more than is held books PnL on
// the held portion only and clamps the position at zero.
func AssignRealizedPnL(trades []Trade) []Trade {
	out := make([]Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})

	book := make(map[string]*ledgerPosition, len(out))
	for i := range out {
		t := &out[i]
		key := t.Market + "|" + t.Outcome
		pos := book[key]
		if pos == nil {
			pos = &ledgerPosition{}
			book[key] = pos
		}

		pnl := 0.0
		if t.Side == SideBuy {
			newSize := pos.size + t.Size
			if newSize > 0 {
				pos.avgPrice = (pos.avgPrice*pos.size + t.Price*t.Size) / newSize
			}
			pos.size = newSize
		} else {
			sold := t.Size
			if sold > pos.size {
				sold = pos.size
			}
			pnl = (t.Price - pos.avgPrice) * sold
			pos.size -= t.Size
			if pos.size < 0 {
				pos.size = 0
			}
		}
		t.PnL = &pnl
	}
	return out
}
