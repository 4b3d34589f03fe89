package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete, immutable run configuration. It is validated once
// at startup and threaded explicitly through every component; nothing in the
// engine reads ambient globals.
type Config struct {
	Instrument InstrumentConfig `json:"instrument" yaml:"instrument"`
	Execution  ExecutionConfig  `json:"execution" yaml:"execution"`
	Roll       RollConfig       `json:"roll" yaml:"roll"`
	Strategy   StrategyConfig   `json:"strategy" yaml:"strategy"`
	Analysis   AnalysisConfig   `json:"analysis" yaml:"analysis"`
	Session    SessionConfig    `json:"session" yaml:"session"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

// InstrumentConfig holds the contract specification of the traded future.
type InstrumentConfig struct {
	Symbol    string  `json:"symbol" yaml:"symbol"`
	TickSize  float64 `json:"tick_size" yaml:"tick_size"`   // minimum price increment
	TickValue float64 `json:"tick_value" yaml:"tick_value"` // USD per tick per contract
}

// ExecutionConfig contains fill-model parameters.
type ExecutionConfig struct {
	SlippageTicks          int     `json:"slippage_ticks" yaml:"slippage_ticks"`
	RollCloseSlippageTicks int     `json:"roll_close_slippage_ticks" yaml:"roll_close_slippage_ticks"`
	CommissionPerSide      float64 `json:"commission_per_side" yaml:"commission_per_side"`
}

// RollConfig controls the post-roll entry freeze.
type RollConfig struct {
	FreezeBars int `json:"freeze_bars" yaml:"freeze_bars"`
}

// StrategyConfig contains the EMA-cross parameters.
type StrategyConfig struct {
	FastPeriod int `json:"fast_period" yaml:"fast_period"`
	SlowPeriod int `json:"slow_period" yaml:"slow_period"`
	WarmupBars int `json:"warmup_bars" yaml:"warmup_bars"`
}

// AnalysisConfig controls the IS/OOS split and the bootstrap.
type AnalysisConfig struct {
	ISFraction         float64 `json:"is_fraction" yaml:"is_fraction"`
	BootstrapResamples int     `json:"bootstrap_resamples" yaml:"bootstrap_resamples"`
	BootstrapSeed      int64   `json:"bootstrap_seed" yaml:"bootstrap_seed"`
	Confidence         float64 `json:"confidence" yaml:"confidence"`
	BarsPerYear        float64 `json:"bars_per_year" yaml:"bars_per_year"`
}

// SessionConfig describes the daily exchange session break, used when
// aggregating minute bars. Times are "HH:MM" in Location.
type SessionConfig struct {
	Location   string `json:"location" yaml:"location"`
	BreakStart string `json:"break_start" yaml:"break_start"`
	BreakEnd   string `json:"break_end" yaml:"break_end"`
	BarMinutes int    `json:"bar_minutes" yaml:"bar_minutes"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	RollsFile  string `json:"rolls_file,omitempty" yaml:"rolls_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
// Fields absent from the file keep their Default() values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML or JSON based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Instrument.Symbol == "" {
		return fmt.Errorf("instrument.symbol is required")
	}
	if c.Instrument.TickSize <= 0 {
		return fmt.Errorf("instrument.tick_size must be positive")
	}
	if c.Instrument.TickValue <= 0 {
		return fmt.Errorf("instrument.tick_value must be positive")
	}
	if c.Execution.SlippageTicks < 0 {
		return fmt.Errorf("execution.slippage_ticks must be >= 0")
	}
	if c.Execution.RollCloseSlippageTicks < 0 {
		return fmt.Errorf("execution.roll_close_slippage_ticks must be >= 0")
	}
	if c.Execution.CommissionPerSide < 0 {
		return fmt.Errorf("execution.commission_per_side must be >= 0")
	}
	if c.Roll.FreezeBars < 0 {
		return fmt.Errorf("roll.freeze_bars must be >= 0")
	}
	if c.Strategy.FastPeriod < 2 {
		return fmt.Errorf("strategy.fast_period must be >= 2")
	}
	if c.Strategy.SlowPeriod <= c.Strategy.FastPeriod {
		return fmt.Errorf("strategy.slow_period must be greater than fast_period")
	}
	if c.Strategy.WarmupBars < 0 {
		return fmt.Errorf("strategy.warmup_bars must be >= 0")
	}
	if c.Analysis.ISFraction <= 0 || c.Analysis.ISFraction >= 1 {
		return fmt.Errorf("analysis.is_fraction must be between 0 and 1 exclusive")
	}
	if c.Analysis.BootstrapResamples <= 0 {
		return fmt.Errorf("analysis.bootstrap_resamples must be positive")
	}
	if c.Analysis.Confidence <= 0 || c.Analysis.Confidence >= 1 {
		return fmt.Errorf("analysis.confidence must be between 0 and 1 exclusive")
	}
	if c.Analysis.BarsPerYear <= 0 {
		return fmt.Errorf("analysis.bars_per_year must be positive")
	}
	if c.Session.BarMinutes <= 0 {
		return fmt.Errorf("session.bar_minutes must be positive")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.TradesFile == "" || c.Journal.EquityFile == "") {
		return fmt.Errorf("journal trades_file and equity_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with the CME Euro FX (6E) contract and
// the baseline strategy parameters.
func Default() *Config {
	return &Config{
		Instrument: InstrumentConfig{
			Symbol:    "6E",
			TickSize:  0.00005,
			TickValue: 6.25,
		},
		Execution: ExecutionConfig{
			SlippageTicks:          1,
			RollCloseSlippageTicks: 2,
			CommissionPerSide:      2.50,
		},
		Roll: RollConfig{
			FreezeBars: 12,
		},
		Strategy: StrategyConfig{
			FastPeriod: 20,
			SlowPeriod: 50,
			WarmupBars: 200,
		},
		Analysis: AnalysisConfig{
			ISFraction:         0.70,
			BootstrapResamples: 1000,
			BootstrapSeed:      42,
			Confidence:         0.95,
			// ~23 trading hours/day x 12 five-minute bars/hour x 252 days
			BarsPerYear: 69552,
		},
		Session: SessionConfig{
			Location:   "America/Chicago",
			BreakStart: "17:00",
			BreakEnd:   "17:59",
			BarMinutes: 5,
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
			EquityFile: "./equity.csv",
			RollsFile:  "./rolls.csv",
		},
	}
}
