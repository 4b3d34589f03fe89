// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes trades, equity and roll events to three flat files.
// Run metadata has no natural CSV home and is dropped.
type CSVJournal struct {
	trades *csv.Writer
	equity *csv.Writer
	rolls  *csv.Writer
	files  []*os.File
}

func NewCSV(tradesPath, equityPath, rollsPath string) (*CSVJournal, error) {
	j := &CSVJournal{}

	open := func(path string) (*csv.Writer, error) {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		j.files = append(j.files, f)
		return csv.NewWriter(f), nil
	}

	var err error
	if j.trades, err = open(tradesPath); err != nil {
		j.Close()
		return nil, err
	}
	if j.equity, err = open(equityPath); err != nil {
		j.Close()
		return nil, err
	}
	if j.rolls, err = open(rollsPath); err != nil {
		j.Close()
		return nil, err
	}

	j.trades.Write([]string{"run_id", "trade_id", "direction", "entry_time", "exit_time", "entry_price", "exit_price", "gross_pnl", "commission", "net_pnl", "exit_reason", "duration_bars"})
	j.equity.Write([]string{"run_id", "time", "equity"})
	j.rolls.Write([]string{"run_id", "time", "forced_close"})

	if err := j.flush(); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) RecordRun(RunRecord) error { return nil }

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	j.trades.Write([]string{
		t.RunID,
		strconv.Itoa(t.TradeID),
		t.Direction,
		t.EntryTime.Format(time.RFC3339),
		t.ExitTime.Format(time.RFC3339),
		f(t.EntryPrice),
		f(t.ExitPrice),
		f(t.GrossPnL),
		f(t.Commission),
		f(t.NetPnL),
		t.ExitReason,
		strconv.Itoa(t.DurationBars),
	})
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquityRecord) error {
	j.equity.Write([]string{
		e.RunID,
		e.Time.Format(time.RFC3339),
		f(e.Equity),
	})
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) RecordRoll(r RollRecord) error {
	j.rolls.Write([]string{
		r.RunID,
		r.Time.Format(time.RFC3339),
		strconv.FormatBool(r.ForcedClose),
	})
	j.rolls.Flush()
	return j.rolls.Error()
}

func (j *CSVJournal) flush() error {
	for _, w := range []*csv.Writer{j.trades, j.equity, j.rolls} {
		if w == nil {
			continue
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	return nil
}

func (j *CSVJournal) Close() error {
	err := j.flush()
	for _, f := range j.files {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
