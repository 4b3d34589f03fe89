package ledger

import (
	"fmt"
	"math"
	"time"
)

// Drawdown holds peak-to-trough statistics for an equity curve.
type Drawdown struct {
	// MaxUSD is the largest peak-to-trough decline, as a positive magnitude.
	MaxUSD float64
	// MaxPct is MaxUSD relative to the peak it fell from, as a negative
	// fraction. NaN when the curve never rises above its starting value.
	MaxPct     float64
	PeakTime   time.Time
	TroughTime time.Time
}

// ComputeDrawdown runs a single running-peak scan over the curve:
// at each point the drawdown is (max equity so far) - equity.
func ComputeDrawdown(eq []EquityPoint) (Drawdown, error) {
	if len(eq) == 0 {
		return Drawdown{}, fmt.Errorf("cannot compute drawdown on an empty equity curve")
	}

	start := eq[0].Equity
	peak := eq[0].Equity
	peakTime := eq[0].Time

	dd := Drawdown{MaxPct: math.NaN()}
	var maxPeak float64 // peak the max drawdown fell from

	for _, p := range eq {
		if p.Equity > peak {
			peak = p.Equity
			peakTime = p.Time
		}
		if d := peak - p.Equity; d > dd.MaxUSD {
			dd.MaxUSD = d
			dd.PeakTime = peakTime
			dd.TroughTime = p.Time
			maxPeak = peak
		}
	}

	if dd.MaxUSD > 0 && maxPeak > start && maxPeak != 0 {
		dd.MaxPct = -dd.MaxUSD / maxPeak
	}
	return dd, nil
}
