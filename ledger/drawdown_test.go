package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curve(values ...float64) []EquityPoint {
	out := make([]EquityPoint, len(values))
	for i, v := range values {
		out[i] = EquityPoint{Time: t0.Add(time.Duration(i) * time.Minute), Equity: v}
	}
	return out
}

func TestComputeDrawdownEmpty(t *testing.T) {
	_, err := ComputeDrawdown(nil)
	require.Error(t, err)
}

func TestComputeDrawdownPicksDeepestDecline(t *testing.T) {
	// peak 150 at index 3, trough 20 at index 4: the 130 decline beats the
	// earlier 100 -> 50 dip
	eq := curve(0, 100, 50, 150, 20)

	dd, err := ComputeDrawdown(eq)
	require.NoError(t, err)

	assert.Equal(t, 130.0, dd.MaxUSD)
	assert.InDelta(t, -130.0/150.0, dd.MaxPct, 1e-12)
	assert.True(t, dd.PeakTime.Equal(eq[3].Time))
	assert.True(t, dd.TroughTime.Equal(eq[4].Time))
}

func TestComputeDrawdownMonotonicRise(t *testing.T) {
	dd, err := ComputeDrawdown(curve(0, 10, 20, 30))
	require.NoError(t, err)

	assert.Equal(t, 0.0, dd.MaxUSD)
	assert.True(t, math.IsNaN(dd.MaxPct))
}

func TestComputeDrawdownNeverAboveStart(t *testing.T) {
	// the curve only declines: the USD drawdown is real but the percentage
	// has no meaningful peak to be relative to
	dd, err := ComputeDrawdown(curve(0, -50, -20, -80))
	require.NoError(t, err)

	assert.Equal(t, 80.0, dd.MaxUSD)
	assert.True(t, math.IsNaN(dd.MaxPct))
}
