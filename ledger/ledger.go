// Package ledger is the source of truth for completed round-trip trades.
// Records are append-only: once written they are never mutated or removed,
// and every downstream metric derives from them.
package ledger

import (
	"time"
)

// Direction of a trade: +1 long, -1 short.
type Direction int8

const (
	Long  Direction = +1
	Short Direction = -1
)

func (d Direction) String() string {
	if d == Long {
		return "long"
	}
	return "short"
}

// ExitReason records why a position was closed.
type ExitReason string

const (
	ExitSignal    ExitReason = "signal"      // crossover or explicit exit signal
	ExitRoll      ExitReason = "roll"        // forced close on a contract roll
	ExitEndOfData ExitReason = "end_of_data" // reconciliation at the final bar
)

// Trade is an immutable record of one completed round trip. Entry and exit
// prices are post-slippage fills; PnL must not be adjusted downstream.
type Trade struct {
	ID           int
	Direction    Direction
	EntryTime    time.Time
	ExitTime     time.Time
	EntryPrice   float64
	ExitPrice    float64
	GrossPnL     float64
	Commission   float64
	NetPnL       float64
	ExitReason   ExitReason
	DurationBars int
}

// Ledger accumulates trades during a run. One Record call per closed
// position, atomic with the close; no partial or provisional records.
type Ledger struct {
	trades []Trade
	nextID int

	pointValue float64 // USD per 1.0 price move = TickValue / TickSize
	commission float64 // per side
}

// New creates a ledger for a contract with the given tick specification.
func New(tickSize, tickValue, commissionPerSide float64) *Ledger {
	return &Ledger{
		nextID:     1,
		pointValue: tickValue / tickSize,
		commission: commissionPerSide,
	}
}

// Record builds and appends the trade for a just-closed position.
//
//	gross = direction x (exit - entry) x (TickValue / TickSize)
//	net   = gross - 2 x commissionPerSide
//
// Slippage is already embedded in the fill prices and is not charged again.
func (l *Ledger) Record(dir Direction, entryTime, exitTime time.Time,
	entryPrice, exitPrice float64, durationBars int, reason ExitReason) Trade {

	gross := float64(dir) * (exitPrice - entryPrice) * l.pointValue
	commission := l.commission * 2

	t := Trade{
		ID:           l.nextID,
		Direction:    dir,
		EntryTime:    entryTime,
		ExitTime:     exitTime,
		EntryPrice:   entryPrice,
		ExitPrice:    exitPrice,
		GrossPnL:     gross,
		Commission:   commission,
		NetPnL:       gross - commission,
		ExitReason:   reason,
		DurationBars: durationBars,
	}

	l.trades = append(l.trades, t)
	l.nextID++
	return t
}

// Trades returns the ordered trade sequence. Callers must treat it as
// read-only.
func (l *Ledger) Trades() []Trade {
	return l.trades
}

func (l *Ledger) Len() int {
	return len(l.trades)
}

// ByExitReason returns the trades closed for the given reason, preserving
// order. The underlying records are shared, not copied.
func ByExitReason(trades []Trade, reason ExitReason) []Trade {
	var out []Trade
	for _, t := range trades {
		if t.ExitReason == reason {
			out = append(out, t)
		}
	}
	return out
}

// ExcludeExitReason returns trades closed for any other reason, so that e.g.
// roll-forced closes can be dropped from signal-quality analysis without
// recomputing PnL.
func ExcludeExitReason(trades []Trade, reason ExitReason) []Trade {
	var out []Trade
	for _, t := range trades {
		if t.ExitReason != reason {
			out = append(out, t)
		}
	}
	return out
}

// SplitByEntryTime partitions trades into those entered before the split
// timestamp (in-sample) and the remainder (out-of-sample). Both halves come
// from the same continuous run; the engine is never re-run per slice.
func SplitByEntryTime(trades []Trade, split time.Time) (is, oos []Trade) {
	for _, t := range trades {
		if t.EntryTime.Before(split) {
			is = append(is, t)
		} else {
			oos = append(oos, t)
		}
	}
	return is, oos
}
