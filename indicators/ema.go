// Package indicators provides causal, streaming technical indicators.
// A value at bar i depends only on bars 0..i; nothing here reads ahead.
package indicators

import (
	"fmt"
	"math"
)

// EMA is a streaming Exponential Moving Average with the standard smoothing
// factor alpha = 2/(period+1), seeded with the SMA of the first period
// closes. Wilder smoothing (alpha = 1/period) is deliberately not used.
type EMA struct {
	period     int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

// NewEMA creates a streaming EMA with the given period.
func NewEMA(period int) (*EMA, error) {
	if period < 2 {
		return nil, fmt.Errorf("ema period must be >= 2, got %d", period)
	}
	return &EMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}, nil
}

func (e *EMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *EMA) Warmup() int {
	return e.period
}

func (e *EMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

// Update feeds one close price.
func (e *EMA) Update(close float64) {
	if e.count < e.period {
		e.warmupSum += close
		e.count++
		if e.count == e.period {
			// Initialize EMA with SMA
			e.ema = e.warmupSum / float64(e.period)
		}
		return
	}
	e.ema = (close-e.ema)*e.multiplier + e.ema
}

func (e *EMA) Ready() bool {
	return e.count >= e.period
}

func (e *EMA) Value() float64 {
	if !e.Ready() {
		return 0
	}
	return e.ema
}

// Series computes the full EMA series over closes. Values before the
// indicator is ready, and within the first warmupBars, are NaN so that the
// signal layer can never act on an unstabilized value.
func Series(closes []float64, period, warmupBars int) ([]float64, error) {
	e, err := NewEMA(period)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(closes))
	for i, c := range closes {
		e.Update(c)
		if !e.Ready() || i < warmupBars {
			out[i] = math.NaN()
			continue
		}
		out[i] = e.Value()
	}
	return out, nil
}

// Pair computes the fast and slow EMA series used by the crossover strategy.
func Pair(closes []float64, fast, slow, warmupBars int) (emaFast, emaSlow []float64, err error) {
	if slow <= fast {
		return nil, nil, fmt.Errorf("slow period %d must exceed fast period %d", slow, fast)
	}
	emaFast, err = Series(closes, fast, warmupBars)
	if err != nil {
		return nil, nil, err
	}
	emaSlow, err = Series(closes, slow, warmupBars)
	if err != nil {
		return nil, nil, err
	}
	return emaFast, emaSlow, nil
}
