package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLiteJournal {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "runs.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleTrade(runID string, id int, exit time.Time) TradeRecord {
	return TradeRecord{
		RunID: runID, TradeID: id, Direction: "long",
		EntryTime: exit.Add(-30 * time.Minute), ExitTime: exit,
		EntryPrice: 1.1000, ExitPrice: 1.1010,
		GrossPnL: 125, Commission: 5, NetPnL: 120,
		ExitReason: "signal", DurationBars: 6,
	}
}

func TestSQLiteRunRoundtrip(t *testing.T) {
	j := newTestDB(t)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordRun(RunRecord{
		RunID: "RUN1", Created: created, Instrument: "6E",
		Bars: 5000, Trades: 42, Config: []byte("instrument:\n  symbol: 6E\n"),
	}))

	got, err := j.GetRun("RUN1")
	require.NoError(t, err)
	assert.Equal(t, "6E", got.Instrument)
	assert.Equal(t, 5000, got.Bars)
	assert.Equal(t, 42, got.Trades)
	assert.True(t, created.Equal(got.Created))
	assert.Contains(t, string(got.Config), "symbol: 6E")
}

func TestSQLiteRunNotFound(t *testing.T) {
	j := newTestDB(t)
	_, err := j.GetRun("NOPE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteTradesByRun(t *testing.T) {
	j := newTestDB(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordTrade(sampleTrade("RUN1", 1, base)))
	require.NoError(t, j.RecordTrade(sampleTrade("RUN1", 2, base.Add(time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("RUN2", 1, base)))

	got, err := j.ListTradesByRun("RUN1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].TradeID)
	assert.Equal(t, 2, got[1].TradeID)
	assert.Equal(t, "long", got[0].Direction)
	assert.InDelta(t, 120.0, got[0].NetPnL, 1e-9)
	assert.True(t, base.Equal(got[0].ExitTime))
}

func TestSQLiteDuplicateTradeRejected(t *testing.T) {
	j := newTestDB(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordTrade(sampleTrade("RUN1", 1, base)))
	assert.Error(t, j.RecordTrade(sampleTrade("RUN1", 1, base)))
}

func TestSQLiteTradesExitedBetween(t *testing.T) {
	j := newTestDB(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		require.NoError(t, j.RecordTrade(sampleTrade("RUN1", i+1, base.Add(time.Duration(i)*time.Hour))))
	}

	got, err := j.ListTradesExitedBetween("RUN1", base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2) // half-open window: exits at +1h and +2h
	assert.Equal(t, 2, got[0].TradeID)
	assert.Equal(t, 3, got[1].TradeID)
}

func TestSQLiteEquityByRun(t *testing.T) {
	j := newTestDB(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordEquity(EquityRecord{RunID: "RUN1", Time: base, Equity: 0}))
	require.NoError(t, j.RecordEquity(EquityRecord{RunID: "RUN1", Time: base.Add(5 * time.Minute), Equity: 120}))

	got, err := j.ListEquityByRun("RUN1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 0.0, got[0].Equity)
	assert.Equal(t, 120.0, got[1].Equity)
}

func TestSQLiteRollsByRun(t *testing.T) {
	j := newTestDB(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, j.RecordRoll(RollRecord{RunID: "RUN1", Time: base, ForcedClose: true}))
	require.NoError(t, j.RecordRoll(RollRecord{RunID: "RUN1", Time: base.Add(time.Hour), ForcedClose: false}))

	got, err := j.ListRollsByRun("RUN1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].ForcedClose)
	assert.False(t, got[1].ForcedClose)
}
