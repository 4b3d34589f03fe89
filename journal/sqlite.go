package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal keeps every run in one database file, so repeated runs
// over the same data can be compared after the fact.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, instrument, bars, trades, config)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Instrument, r.Bars, r.Trades, r.Config,
	)
	return err
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, trade_id, direction, entry_time, exit_time, entry_price, exit_price, gross_pnl, commission, net_pnl, exit_reason, duration_bars)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.TradeID, t.Direction, t.EntryTime, t.ExitTime,
		t.EntryPrice, t.ExitPrice, t.GrossPnL, t.Commission, t.NetPnL,
		t.ExitReason, t.DurationBars,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquityRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, equity) VALUES (?, ?, ?)`,
		e.RunID, e.Time, e.Equity,
	)
	return err
}

func (j *SQLiteJournal) RecordRoll(r RollRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO roll_events (run_id, time, forced_close) VALUES (?, ?, ?)`,
		r.RunID, r.Time, r.ForcedClose,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
