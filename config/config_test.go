package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateCatchesBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty symbol", func(c *Config) { c.Instrument.Symbol = "" }},
		{"zero tick size", func(c *Config) { c.Instrument.TickSize = 0 }},
		{"negative tick value", func(c *Config) { c.Instrument.TickValue = -1 }},
		{"negative slippage", func(c *Config) { c.Execution.SlippageTicks = -1 }},
		{"negative roll slippage", func(c *Config) { c.Execution.RollCloseSlippageTicks = -2 }},
		{"negative commission", func(c *Config) { c.Execution.CommissionPerSide = -0.5 }},
		{"negative freeze", func(c *Config) { c.Roll.FreezeBars = -1 }},
		{"fast period too small", func(c *Config) { c.Strategy.FastPeriod = 1 }},
		{"slow not above fast", func(c *Config) { c.Strategy.SlowPeriod = c.Strategy.FastPeriod }},
		{"negative warmup", func(c *Config) { c.Strategy.WarmupBars = -1 }},
		{"is fraction zero", func(c *Config) { c.Analysis.ISFraction = 0 }},
		{"is fraction one", func(c *Config) { c.Analysis.ISFraction = 1 }},
		{"zero resamples", func(c *Config) { c.Analysis.BootstrapResamples = 0 }},
		{"confidence out of range", func(c *Config) { c.Analysis.Confidence = 1 }},
		{"zero bars per year", func(c *Config) { c.Analysis.BarsPerYear = 0 }},
		{"zero bar minutes", func(c *Config) { c.Session.BarMinutes = 0 }},
		{"unknown journal type", func(c *Config) { c.Journal.Type = "parquet" }},
		{"csv without paths", func(c *Config) { c.Journal.Type = "csv"; c.Journal.TradesFile = "" }},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite"; c.Journal.DBPath = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveLoadYAMLRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	cfg := Default()
	cfg.Instrument.Symbol = "6B"
	cfg.Roll.FreezeBars = 7
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestSaveLoadJSONRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	cfg := Default()
	cfg.Analysis.BootstrapSeed = 7
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("instrument:\n  symbol: ES\n  tick_size: 0.25\n  tick_value: 12.50\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ES", cfg.Instrument.Symbol)
	assert.Equal(t, 0.25, cfg.Instrument.TickSize)
	// untouched sections keep their defaults
	assert.Equal(t, Default().Strategy, cfg.Strategy)
	assert.Equal(t, Default().Analysis, cfg.Analysis)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidConfigRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roll:\n  freeze_bars: -3\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
