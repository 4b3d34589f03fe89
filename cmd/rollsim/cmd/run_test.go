package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/rollsim/config"
	"github.com/rustyeddy/rollsim/engine"
	"github.com/rustyeddy/rollsim/market"
)

func reportConfig() *config.Config {
	cfg := config.Default()
	cfg.Instrument = config.InstrumentConfig{Symbol: "TEST", TickSize: 0.25, TickValue: 12.50}
	cfg.Execution = config.ExecutionConfig{}
	cfg.Strategy = config.StrategyConfig{FastPeriod: 2, SlowPeriod: 3, WarmupBars: 0}
	cfg.Analysis.BootstrapResamples = 50
	return cfg
}

func TestPrintReportFromRun(t *testing.T) {
	t0 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, 12)
	for i := range bars {
		p := 100.0 + float64(i)
		bars[i] = market.Bar{
			Time: t0.Add(time.Duration(i) * 5 * time.Minute),
			Open: p, High: p + 1, Low: p, Close: p + 0.5, Volume: 1,
		}
	}
	bars[2].Signal = market.SignalEnterLong
	bars[5].Signal = market.SignalExit

	cfg := reportConfig()
	res, err := engine.New(cfg, nil).Run(bars)
	require.NoError(t, err)
	require.NotZero(t, res.Ledger.Len())

	assert.NotPanics(t, func() {
		printReport(cfg, res, res.Ledger.Trades())
	})
}

func TestPrintReportEmptyRun(t *testing.T) {
	// no trades and no equity points: the drawdown and stats sections must
	// degrade to n/a lines instead of failing
	assert.NotPanics(t, func() {
		printReport(reportConfig(), &engine.Result{}, nil)
	})
}
