package engine

import (
	"time"

	"github.com/rustyeddy/rollsim/ledger"
)

// position is the single open exposure. It exists only between an entry
// fill and its matching exit fill; the instrument is single-leg, so there
// is never more than one.
type position struct {
	open       bool
	side       ledger.Direction
	entryTime  time.Time
	entryPrice float64
	entryIndex int // fill bar index, for duration accounting
}

// pendingOrder is an action decided at bar i, awaiting its fill at bar
// i+1's open. Close-then-flat: a pending order never both closes and opens.
type pendingOrder struct {
	closePos   bool
	openDir    ledger.Direction // 0 means no entry
	exitReason ledger.ExitReason
	signalTime time.Time // bar at which the decision was made, for audit
}
