package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/rollsim/ledger"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func tradesWithPnL(pnls ...float64) []ledger.Trade {
	out := make([]ledger.Trade, len(pnls))
	for i, p := range pnls {
		out[i] = ledger.Trade{ID: i + 1, NetPnL: p}
	}
	return out
}

func equityCurve(values ...float64) []ledger.EquityPoint {
	out := make([]ledger.EquityPoint, len(values))
	for i, v := range values {
		out[i] = ledger.EquityPoint{Time: t0.Add(time.Duration(i) * time.Minute), Equity: v}
	}
	return out
}

func TestComputeEmptyTrades(t *testing.T) {
	_, err := Compute(nil, nil, 252)
	require.Error(t, err)
}

func TestComputeCounts(t *testing.T) {
	s, err := Compute(tradesWithPnL(100, -50, 50), equityCurve(0, 100, 50, 100), 252)
	require.NoError(t, err)

	assert.Equal(t, 3, s.TotalTrades)
	assert.Equal(t, 2, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.InDelta(t, 2.0/3.0, s.WinRate, 1e-12)

	assert.Equal(t, 150.0, s.GrossProfit)
	assert.Equal(t, -50.0, s.GrossLoss)
	assert.Equal(t, 100.0, s.NetProfit)
	assert.InDelta(t, 3.0, s.ProfitFactor, 1e-12)
	assert.InDelta(t, 100.0/3.0, s.Expectancy, 1e-12)
	assert.Equal(t, 75.0, s.AvgWin)
	assert.Equal(t, -50.0, s.AvgLoss)
}

func TestComputeZeroPnLCountsAsLoss(t *testing.T) {
	s, err := Compute(tradesWithPnL(0, 10), equityCurve(0, 0, 10), 252)
	require.NoError(t, err)

	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
}

func TestProfitFactorNoLosses(t *testing.T) {
	s, err := Compute(tradesWithPnL(10, 20), equityCurve(0, 10, 30), 252)
	require.NoError(t, err)

	assert.True(t, math.IsInf(s.ProfitFactor, 1))
	assert.True(t, math.IsNaN(s.AvgLoss))
}

func TestCAGRUndefinedOnZeroBase(t *testing.T) {
	// cumulative-PnL curves start at zero: growth relative to zero is
	// undefined, not infinite
	s, err := Compute(tradesWithPnL(100), equityCurve(0, 50, 100), 252)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(s.CAGR))
}

func TestCAGRPositiveBase(t *testing.T) {
	// 10000 -> 12100 over exactly two "years" of bars: sqrt(1.21)-1 = 10%
	s, err := Compute(tradesWithPnL(2100), equityCurve(10000, 11000, 12100, 12100), 2)
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(1.21, 1.0/2.0)-1, s.CAGR, 1e-12)
}

func TestSharpeZeroVariance(t *testing.T) {
	s, err := Compute(tradesWithPnL(10), equityCurve(0, 5, 10, 15), 252)
	require.NoError(t, err)
	// constant per-bar delta: zero dispersion, Sharpe undefined
	assert.True(t, math.IsNaN(s.Sharpe))
}

func TestSharpeKnownValue(t *testing.T) {
	// deltas 10, 20: mean 15, sample std sqrt(50)
	s, err := Compute(tradesWithPnL(30), equityCurve(0, 10, 30), 100)
	require.NoError(t, err)

	want := 15.0 / math.Sqrt(50) * math.Sqrt(100)
	assert.InDelta(t, want, s.Sharpe, 1e-12)
}
