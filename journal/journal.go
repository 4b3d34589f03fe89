// Package journal persists run artifacts: the trade ledger, the equity
// curve and the roll-event log. The core only defines the logical schema;
// sinks here decide file format and location.
package journal

import "time"

// TradeRecord mirrors one ledger trade, tagged with its run.
type TradeRecord struct {
	RunID        string
	TradeID      int
	Direction    string
	EntryTime    time.Time
	ExitTime     time.Time
	EntryPrice   float64
	ExitPrice    float64
	GrossPnL     float64
	Commission   float64
	NetPnL       float64
	ExitReason   string
	DurationBars int
}

// EquityRecord is one bar of the cumulative net PnL curve.
type EquityRecord struct {
	RunID  string
	Time   time.Time
	Equity float64
}

// RollRecord is one roll event and whether it forced a close.
type RollRecord struct {
	RunID       string
	Time        time.Time
	ForcedClose bool
}

// RunRecord is the run-level metadata written once per simulation.
type RunRecord struct {
	RunID      string
	Created    time.Time
	Instrument string
	Bars       int
	Trades     int
	Config     []byte // serialized configuration for audit
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquityRecord) error
	RecordRoll(RollRecord) error
	Close() error
}
