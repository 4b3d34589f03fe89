// Package engine replays a prepared bar sequence through the roll-aware
// position state machine and produces the trade ledger, equity curve and
// roll-event log for one continuous run.
//
// Anti-lookahead contract: a decision made from bar i's data is filled
// strictly at bar i+1's open. While resolving bar i's action the engine
// reads nothing of bar i+1 except its open, and nothing at all of later
// bars.
package engine

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/rollsim/config"
	"github.com/rustyeddy/rollsim/ledger"
	"github.com/rustyeddy/rollsim/market"
)

// ErrUnreconciledPosition signals an internal invariant violation: a
// position survived the end-of-data closure rule. It should never surface.
var ErrUnreconciledPosition = errors.New("unreconciled open position at end of run")

// Result is everything one forward pass produces. All fields are derived
// deterministically from the bars and the configuration.
type Result struct {
	Ledger     *ledger.Ledger
	Equity     []ledger.EquityPoint
	RollEvents []RollEvent

	BarsProcessed  int
	WarmupIgnored  int // signals discarded inside the warmup window
	FrozenIgnored  int // entry signals discarded inside a freeze window
	Start, End     time.Time
	SplitTime      time.Time // IS/OOS boundary from cfg.Analysis.ISFraction
}

// Engine is a deterministic single-pass simulator. It owns no state between
// runs; all mutable state lives inside Run.
type Engine struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates an engine. A nil logger disables logging.
func New(cfg *config.Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, log: log}
}

// Run replays the bar sequence in one strictly sequential forward pass.
// The bars must already carry their signals and roll flags; Run validates
// ordering and data quality up front and aborts before producing any trade
// on a violation.
func (e *Engine) Run(bars []market.Bar) (*Result, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("engine: empty bar sequence")
	}
	if err := market.Validate(bars); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	led := ledger.New(
		e.cfg.Instrument.TickSize,
		e.cfg.Instrument.TickValue,
		e.cfg.Execution.CommissionPerSide,
	)

	rc := rollController{freezeBars: e.cfg.Roll.FreezeBars}
	var pos position
	var pend *pendingOrder

	res := &Result{
		Ledger: led,
		Start:  bars[0].Time,
		End:    bars[len(bars)-1].Time,
	}

	e.log.Info("starting run",
		zap.Int("bars", len(bars)),
		zap.String("instrument", e.cfg.Instrument.Symbol),
		zap.Time("start", res.Start),
		zap.Time("end", res.End),
	)

	for i := range bars {
		bar := &bars[i]

		// 1. Fill the order decided on the previous bar at this open.
		// Runs unconditionally: a pending close must fill even on a roll
		// bar or inside a freeze, or the position state goes stale.
		if pend != nil {
			e.executePending(pend, bar, i, &pos, led)
			pend = nil
		}

		// 2. Roll controller verdict for this bar.
		v := rc.evaluate(bar.IsRoll, pos.open)
		if bar.IsRoll {
			res.RollEvents = append(res.RollEvents, RollEvent{Time: bar.Time, ForcedClose: v.ForceClose})
		}

		// 3. Forced close takes precedence over the bar's own signal.
		// The close is an ordinary pending order: it fills at the next
		// bar's open, with the roll slippage rate.
		if v.ForceClose {
			pend = &pendingOrder{closePos: true, exitReason: ledger.ExitRoll, signalTime: bar.Time}
			continue
		}

		// 4. Freeze window: entry signals are discarded outright — never
		// queued, never deferred. Exits are not entries and still honor.
		if v.EntriesBlocked {
			switch bar.Signal {
			case market.SignalEnterLong, market.SignalEnterShort:
				res.FrozenIgnored++
				e.log.Debug("entry discarded in freeze window",
					zap.Time("bar", bar.Time), zap.Stringer("signal", bar.Signal))
			case market.SignalExit:
				if pos.open {
					pend = &pendingOrder{closePos: true, exitReason: ledger.ExitSignal, signalTime: bar.Time}
				}
			}
			continue
		}

		// 5. Warmup guard: signals before the warmup bar count are ignored,
		// not fatal.
		if bar.Signal != market.SignalNone && i < e.cfg.Strategy.WarmupBars {
			res.WarmupIgnored++
			e.log.Warn("signal before warmup elapsed, ignoring",
				zap.Time("bar", bar.Time), zap.Stringer("signal", bar.Signal), zap.Int("bar_index", i))
			continue
		}

		// 6. Normal signal evaluation.
		pend = e.evaluateSignal(bar, &pos)
	}

	// A pending order decided on the final bar has no next open to fill at
	// and is dropped. Any position still open is reconciled at the final
	// bar's open so every entry has exactly one matching trade record.
	e.reconcileEnd(bars, &pos, led)
	if pos.open {
		return nil, ErrUnreconciledPosition
	}

	res.BarsProcessed = len(bars)
	res.Equity = ledger.BuildEquity(led.Trades(), barTimes(bars), 0)
	res.SplitTime = splitTime(res.Start, res.End, e.cfg.Analysis.ISFraction)

	e.log.Info("run complete",
		zap.Int("trades", led.Len()),
		zap.Int("roll_events", len(res.RollEvents)),
		zap.Int("warmup_ignored", res.WarmupIgnored),
		zap.Int("frozen_ignored", res.FrozenIgnored),
	)
	return res, nil
}

// evaluateSignal is the flat/long/short state machine. Close-then-flat: an
// opposite cross closes the position and a fresh signal is required to
// re-enter; there is no same-bar reversal.
func (e *Engine) evaluateSignal(bar *market.Bar, pos *position) *pendingOrder {
	switch bar.Signal {
	case market.SignalEnterLong, market.SignalEnterShort:
		dir := ledger.Long
		if bar.Signal == market.SignalEnterShort {
			dir = ledger.Short
		}
		if !pos.open {
			return &pendingOrder{openDir: dir, signalTime: bar.Time}
		}
		if pos.side != dir {
			// opposite crossover: exit only
			return &pendingOrder{closePos: true, exitReason: ledger.ExitSignal, signalTime: bar.Time}
		}
		// already positioned in this direction: no-op
		return nil

	case market.SignalExit:
		if pos.open {
			return &pendingOrder{closePos: true, exitReason: ledger.ExitSignal, signalTime: bar.Time}
		}
		return nil
	}
	return nil
}

// executePending fills the order decided on the previous bar at this bar's
// open. Only the open price of the execution bar is read.
func (e *Engine) executePending(p *pendingOrder, bar *market.Bar, i int, pos *position, led *ledger.Ledger) {
	if p.closePos && pos.open {
		exit := e.fillPrice(-pos.side, bar.Open, p.exitReason == ledger.ExitRoll)
		t := led.Record(pos.side, pos.entryTime, bar.Time, pos.entryPrice, exit,
			i-pos.entryIndex, p.exitReason)
		pos.open = false
		e.log.Debug("closed position",
			zap.Int("trade_id", t.ID),
			zap.Stringer("direction", t.Direction),
			zap.Float64("exit", exit),
			zap.String("reason", string(p.exitReason)),
		)
	}

	if p.openDir != 0 && !pos.open {
		entry := e.fillPrice(p.openDir, bar.Open, false)
		*pos = position{
			open:       true,
			side:       p.openDir,
			entryTime:  bar.Time,
			entryPrice: entry,
			entryIndex: i,
		}
		e.log.Debug("opened position",
			zap.Stringer("direction", p.openDir),
			zap.Float64("entry", entry),
			zap.Time("bar", bar.Time),
		)
	}
}

// reconcileEnd closes a position left open at the final bar, at that bar's
// open with normal slippage and the distinguished end_of_data reason. The
// caller asserts the position is flat afterwards.
func (e *Engine) reconcileEnd(bars []market.Bar, pos *position, led *ledger.Ledger) {
	if !pos.open {
		return
	}

	last := &bars[len(bars)-1]
	exit := e.fillPrice(-pos.side, last.Open, false)
	led.Record(pos.side, pos.entryTime, last.Time, pos.entryPrice, exit,
		len(bars)-1-pos.entryIndex, ledger.ExitEndOfData)
	pos.open = false
	e.log.Info("closed open position at end of data", zap.Time("bar", last.Time))
}

func barTimes(bars []market.Bar) []time.Time {
	out := make([]time.Time, len(bars))
	for i, b := range bars {
		out[i] = b.Time
	}
	return out
}

// splitTime places the IS/OOS boundary at isFraction of the elapsed
// calendar range of the run.
func splitTime(start, end time.Time, isFraction float64) time.Time {
	span := end.Sub(start)
	return start.Add(time.Duration(float64(span) * isFraction))
}
