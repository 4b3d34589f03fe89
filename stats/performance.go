// Package stats computes point-estimate performance metrics and bootstrap
// confidence intervals over ledger slices. Everything here is read-only:
// the trades and equity passed in are never mutated, so full-run, IS and
// OOS summaries all come from the same single engine pass.
package stats

import (
	"fmt"
	"math"

	"github.com/rustyeddy/rollsim/ledger"
)

// Summary holds the point-estimate metrics for one trade subset.
type Summary struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64 // fraction of trades with NetPnL > 0

	GrossProfit float64 // sum of positive net PnL
	GrossLoss   float64 // sum of negative net PnL (<= 0)
	NetProfit   float64

	ProfitFactor float64 // GrossProfit / |GrossLoss|; +Inf with no losses
	Expectancy   float64 // mean net PnL per trade
	AvgWin       float64
	AvgLoss      float64

	CAGR   float64 // NaN when the equity base at slice start is zero
	Sharpe float64 // annualized from per-bar equity deltas
}

// Compute derives the summary for a trade subset and its matching equity
// slice. barsPerYear is the annualization factor for Sharpe and CAGR.
func Compute(trades []ledger.Trade, equity []ledger.EquityPoint, barsPerYear float64) (Summary, error) {
	if len(trades) == 0 {
		return Summary{}, fmt.Errorf("cannot compute performance: no trades")
	}

	var s Summary
	s.TotalTrades = len(trades)

	var sum float64
	for _, t := range trades {
		sum += t.NetPnL
		if t.NetPnL > 0 {
			s.WinningTrades++
			s.GrossProfit += t.NetPnL
		} else {
			s.LosingTrades++
			s.GrossLoss += t.NetPnL
		}
	}

	s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades)
	s.NetProfit = s.GrossProfit + s.GrossLoss
	s.Expectancy = sum / float64(s.TotalTrades)

	if s.GrossLoss != 0 {
		s.ProfitFactor = s.GrossProfit / math.Abs(s.GrossLoss)
	} else {
		s.ProfitFactor = math.Inf(1)
	}

	s.AvgWin = math.NaN()
	if s.WinningTrades > 0 {
		s.AvgWin = s.GrossProfit / float64(s.WinningTrades)
	}
	s.AvgLoss = math.NaN()
	if s.LosingTrades > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.LosingTrades)
	}

	s.CAGR = cagr(equity, barsPerYear)
	s.Sharpe = sharpe(equity, barsPerYear)
	return s, nil
}

// cagr computes the compound annual growth rate of the equity slice. A
// curve whose base is zero (pure cumulative PnL) has no defined growth
// rate and yields NaN.
func cagr(equity []ledger.EquityPoint, barsPerYear float64) float64 {
	if len(equity) < 2 {
		return math.NaN()
	}

	start := equity[0].Equity
	end := equity[len(equity)-1].Equity
	if start == 0 {
		return math.NaN()
	}

	ratio := end / start
	if ratio <= 0 {
		return math.NaN()
	}

	years := float64(len(equity)) / barsPerYear
	return math.Pow(ratio, 1.0/years) - 1.0
}

// sharpe annualizes the mean/stddev of per-bar equity changes.
func sharpe(equity []ledger.EquityPoint, barsPerYear float64) float64 {
	if len(equity) < 2 {
		return math.NaN()
	}

	deltas := make([]float64, len(equity)-1)
	var mean float64
	for i := 1; i < len(equity); i++ {
		d := equity[i].Equity - equity[i-1].Equity
		deltas[i-1] = d
		mean += d
	}
	mean /= float64(len(deltas))

	var variance float64
	for _, d := range deltas {
		variance += (d - mean) * (d - mean)
	}
	if len(deltas) < 2 {
		return math.NaN()
	}
	variance /= float64(len(deltas) - 1)

	std := math.Sqrt(variance)
	if std == 0 {
		return math.NaN()
	}
	return mean / std * math.Sqrt(barsPerYear)
}
