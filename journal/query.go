package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetRun returns the metadata row for one run.
func (j *SQLiteJournal) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, created, instrument, bars, trades, config
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID,
		&rec.Created,
		&rec.Instrument,
		&rec.Bars,
		&rec.Trades,
		&rec.Config,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListTradesByRun returns a run's trades in ledger order.
func (j *SQLiteJournal) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, trade_id, direction, entry_time, exit_time, entry_price, exit_price, gross_pnl, commission, net_pnl, exit_reason, duration_bars
		FROM trades
		WHERE run_id = ?
		ORDER BY trade_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListTradesExitedBetween returns trades whose exit_time is within [start, end).
func (j *SQLiteJournal) ListTradesExitedBetween(runID string, start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, trade_id, direction, entry_time, exit_time, entry_price, exit_price, gross_pnl, commission, net_pnl, exit_reason, duration_bars
		FROM trades
		WHERE run_id = ? AND exit_time >= ? AND exit_time < ?
		ORDER BY exit_time ASC`, runID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrades(rows)
}

// ListEquityByRun returns a run's equity curve in time order.
func (j *SQLiteJournal) ListEquityByRun(runID string) ([]EquityRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, equity
		FROM equity
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityRecord
	for rows.Next() {
		var rec EquityRecord
		if err := rows.Scan(&rec.RunID, &rec.Time, &rec.Equity); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRollsByRun returns a run's roll events in time order.
func (j *SQLiteJournal) ListRollsByRun(runID string) ([]RollRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, forced_close
		FROM roll_events
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RollRecord
	for rows.Next() {
		var rec RollRecord
		if err := rows.Scan(&rec.RunID, &rec.Time, &rec.ForcedClose); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrades(rows *sql.Rows) ([]TradeRecord, error) {
	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.TradeID,
			&rec.Direction,
			&rec.EntryTime,
			&rec.ExitTime,
			&rec.EntryPrice,
			&rec.ExitPrice,
			&rec.GrossPnL,
			&rec.Commission,
			&rec.NetPnL,
			&rec.ExitReason,
			&rec.DurationBars,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
