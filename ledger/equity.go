package ledger

import (
	"time"
)

// EquityPoint is one bar of the cumulative net PnL curve.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}

// BuildEquity derives a bar-resolution equity curve from closed trades.
// Each trade's net PnL is attributed to its exit bar; all other bars
// contribute zero, so the curve is flat between closes. Open positions are
// not marked to market.
func BuildEquity(trades []Trade, barTimes []time.Time, initial float64) []EquityPoint {
	pnlByBar := make(map[time.Time]float64, len(trades))
	for _, t := range trades {
		pnlByBar[t.ExitTime] += t.NetPnL
	}

	out := make([]EquityPoint, len(barTimes))
	equity := initial
	for i, ts := range barTimes {
		equity += pnlByBar[ts]
		out[i] = EquityPoint{Time: ts, Equity: equity}
	}
	return out
}

// SplitEquity splits an equity curve at the IS/OOS boundary: points strictly
// before split form the in-sample half.
func SplitEquity(eq []EquityPoint, split time.Time) (is, oos []EquityPoint) {
	for i, p := range eq {
		if !p.Time.Before(split) {
			return eq[:i], eq[i:]
		}
	}
	return eq, nil
}
