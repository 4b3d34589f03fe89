package engine

import (
	"math"

	"github.com/rustyeddy/rollsim/ledger"
)

// fillPrice computes the fill for a market order at the execution bar's
// open. orderDir is the direction of this particular order — closing a long
// is a sell (Short) order — so adverse slippage always works against the
// trader:
//
//	buy  -> open + ticks x TickSize
//	sell -> open - ticks x TickSize
//
// Roll-forced closes use the larger RollCloseSlippageTicks, reflecting the
// thinner book around a roll. The returned price already embeds slippage
// and must not be adjusted again downstream.
func (e *Engine) fillPrice(orderDir ledger.Direction, barOpen float64, rollClose bool) float64 {
	ticks := e.cfg.Execution.SlippageTicks
	if rollClose {
		ticks = e.cfg.Execution.RollCloseSlippageTicks
	}
	slip := float64(ticks) * e.cfg.Instrument.TickSize

	px := barOpen + slip
	if orderDir == ledger.Short {
		px = barOpen - slip
	}
	return roundToTick(px, e.cfg.Instrument.TickSize)
}

// roundToTick snaps a price to the nearest valid tick, clearing sub-tick
// float artifacts from the slippage arithmetic.
func roundToTick(price, tick float64) float64 {
	steps := math.Round(price / tick)
	// second rounding trims the representation error of steps*tick itself
	factor := 1e10
	return math.Round(steps*tick*factor) / factor
}
