// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	bars INTEGER NOT NULL,
	trades INTEGER NOT NULL,
	config BLOB
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	trade_id INTEGER NOT NULL,
	direction TEXT NOT NULL,
	entry_time DATETIME NOT NULL,
	exit_time DATETIME NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	gross_pnl REAL NOT NULL,
	commission REAL NOT NULL,
	net_pnl REAL NOT NULL,
	exit_reason TEXT NOT NULL,
	duration_bars INTEGER NOT NULL,
	PRIMARY KEY (run_id, trade_id)
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	equity REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS roll_events (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	forced_close INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_exit ON trades(run_id, exit_time);
CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(run_id, time);
`
