// Package strategies turns indicator state into per-bar entry signals.
// Signals are annotations only: no fills, no slippage, no position state.
package strategies

import (
	"fmt"
	"math"

	"github.com/rustyeddy/rollsim/config"
	"github.com/rustyeddy/rollsim/indicators"
	"github.com/rustyeddy/rollsim/market"
)

// EMACross generates crossover signals from a fast/slow EMA pair.
// A signal at bar i uses only EMA values at bars i-1 and i; it directs the
// engine to act at the open of bar i+1.
type EMACross struct {
	cfg config.StrategyConfig
}

func NewEMACross(cfg config.StrategyConfig) *EMACross {
	return &EMACross{cfg: cfg}
}

func (s *EMACross) Name() string {
	return fmt.Sprintf("ema-cross(%d,%d)", s.cfg.FastPeriod, s.cfg.SlowPeriod)
}

// Annotate computes the EMA pair over the bar closes and writes crossover
// signals into the bars in place:
//   - fast crosses above slow -> SignalEnterLong
//   - fast crosses below slow -> SignalEnterShort
//
// Bars where either EMA is still warming up get SignalNone. Returns the
// number of long and short signals produced.
func (s *EMACross) Annotate(bars []market.Bar) (longs, shorts int, err error) {
	fast, slow, err := indicators.Pair(market.Closes(bars), s.cfg.FastPeriod, s.cfg.SlowPeriod, s.cfg.WarmupBars)
	if err != nil {
		return 0, 0, fmt.Errorf("ema pair: %w", err)
	}

	for i := range bars {
		bars[i].Signal = market.SignalNone
		if i == 0 {
			continue
		}

		diff := fast[i] - slow[i]
		prevDiff := fast[i-1] - slow[i-1]

		// Strict: both the current and previous diff must be warmed up.
		if math.IsNaN(diff) || math.IsNaN(prevDiff) {
			continue
		}

		switch {
		case diff > 0 && prevDiff <= 0:
			bars[i].Signal = market.SignalEnterLong
			longs++
		case diff < 0 && prevDiff >= 0:
			bars[i].Signal = market.SignalEnterShort
			shorts++
		}
	}
	return longs, shorts, nil
}
