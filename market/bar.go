package market

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Signal is the per-bar instruction precomputed by the strategy layer.
// It is derived only from information at or before the bar's own timestamp.
type Signal int8

const (
	SignalNone       Signal = 0
	SignalEnterLong  Signal = 1
	SignalEnterShort Signal = -1
	SignalExit       Signal = 2
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalEnterLong:
		return "enter_long"
	case SignalEnterShort:
		return "enter_short"
	case SignalExit:
		return "exit"
	}
	return fmt.Sprintf("Signal(%d)", int8(s))
}

// Bar is one fixed-interval OHLCV record with its trading annotations.
// The timestamp is the bar's open time.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Signal Signal
	IsRoll bool
}

var (
	// ErrDataOrdering reports non-monotonic or duplicate timestamps. It is
	// fatal: the run aborts before any trade is produced.
	ErrDataOrdering = errors.New("bar sequence out of order")

	// ErrBadBar reports a bar whose OHLCV is not usable (NaN/Inf or an
	// inverted high/low). Bad bars are reported, never silently skipped.
	ErrBadBar = errors.New("bad bar data")
)

// Validate checks a bar sequence for strict time ordering and usable OHLCV.
// The first violation is returned with its offending timestamp.
func Validate(bars []Bar) error {
	for i, b := range bars {
		if i > 0 && !b.Time.After(bars[i-1].Time) {
			return fmt.Errorf("%w: bar %d at %s does not follow %s",
				ErrDataOrdering, i, b.Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
		}
		if err := b.check(); err != nil {
			return err
		}
	}
	return nil
}

func (b Bar) check() error {
	for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite OHLCV at %s", ErrBadBar, b.Time.Format(time.RFC3339))
		}
	}
	if b.High < b.Low {
		return fmt.Errorf("%w: high < low at %s", ErrBadBar, b.Time.Format(time.RFC3339))
	}
	return nil
}

// Closes returns the close prices of a bar slice.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
