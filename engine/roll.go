package engine

import "time"

// Verdict is the roll controller's per-bar decision.
type Verdict struct {
	ForceClose     bool
	EntriesBlocked bool
}

// RollEvent is one entry of the roll-event log.
type RollEvent struct {
	Time        time.Time
	ForcedClose bool
}

// rollController owns the post-roll freeze counter. It is the only
// component allowed to mutate it.
type rollController struct {
	freezeBars int
	remaining  int
}

// evaluate advances the controller by one bar and returns its verdict.
//
// On a roll bar the counter resets to freezeBars — a roll landing inside an
// active freeze does not stack — and entries are blocked immediately; a
// forced close is demanded only when a position is actually open. The
// counter decrements by exactly one per processed bar, the roll bar
// included, so the blocked window is freezeBars bars long counting the roll
// bar itself.
func (rc *rollController) evaluate(isRoll, positionOpen bool) Verdict {
	if isRoll {
		rc.remaining = rc.freezeBars
		if rc.remaining > 0 {
			rc.remaining--
		}
		return Verdict{ForceClose: positionOpen, EntriesBlocked: true}
	}
	if rc.remaining > 0 {
		rc.remaining--
		return Verdict{EntriesBlocked: true}
	}
	return Verdict{}
}
