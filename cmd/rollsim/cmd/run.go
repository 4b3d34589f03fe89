package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/rollsim/config"
	"github.com/rustyeddy/rollsim/engine"
	"github.com/rustyeddy/rollsim/internal/id"
	"github.com/rustyeddy/rollsim/journal"
	"github.com/rustyeddy/rollsim/ledger"
	"github.com/rustyeddy/rollsim/market"
	"github.com/rustyeddy/rollsim/stats"
	"github.com/rustyeddy/rollsim/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a bar file through the strategy and report performance",
	Long: `Run loads a bar CSV (time,open,high,low,close,volume[,instrument_id]),
filters the session break, resamples to the configured bar width, annotates
EMA-cross signals and replays the result through the roll-aware engine.

The report covers the full run plus the in-sample and out-of-sample
partitions of the single continuous pass, with a bootstrap confidence
interval on expectancy for each.

Example:
  rollsim run --bars data/6e_1min.csv --config 6e.yaml`,
	RunE: runReplay,
}

var (
	runBarsPath     string
	runConfigPath   string
	runJournalType  string
	runNoFilter     bool
	runExcludeRolls bool
	runVerbose      bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runBarsPath, "bars", "b", "", "path to bar CSV (required)")
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to YAML/JSON config (default: built-in 6E defaults)")
	runCmd.Flags().StringVar(&runJournalType, "journal", "", "journal sink: csv, sqlite or none (default: from config)")
	runCmd.Flags().BoolVar(&runNoFilter, "no-session-filter", false, "skip the daily session-break filter")
	runCmd.Flags().BoolVar(&runExcludeRolls, "exclude-rolls", false, "drop roll-forced closes from the performance report")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "debug logging")

	runCmd.MarkFlagRequired("bars")
}

func runReplay(cmd *cobra.Command, args []string) error {
	log, err := newLogger(runVerbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg := config.Default()
	if runConfigPath != "" {
		if cfg, err = config.LoadFromFile(runConfigPath); err != nil {
			return err
		}
	}

	bars, err := market.LoadCSV(runBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	log.Info("loaded bars", zap.String("path", runBarsPath), zap.Int("bars", len(bars)))

	if !runNoFilter && cfg.Session.BreakStart != "" {
		loc, err := time.LoadLocation(cfg.Session.Location)
		if err != nil {
			return fmt.Errorf("session location: %w", err)
		}
		if bars, err = market.FilterSessionBreak(bars, loc, cfg.Session.BreakStart, cfg.Session.BreakEnd); err != nil {
			return fmt.Errorf("session filter: %w", err)
		}
	}

	if cfg.Session.BarMinutes > 1 {
		width := time.Duration(cfg.Session.BarMinutes) * time.Minute
		if bars, err = market.Resample(bars, width); err != nil {
			return fmt.Errorf("resample: %w", err)
		}
		log.Info("resampled", zap.Duration("bar_width", width), zap.Int("bars", len(bars)))
	}

	strat := strategies.NewEMACross(cfg.Strategy)
	longs, shorts, err := strat.Annotate(bars)
	if err != nil {
		return fmt.Errorf("annotate: %w", err)
	}

	fmt.Printf("Replaying %d bars of %s with %s\n", len(bars), cfg.Instrument.Symbol, strat.Name())
	fmt.Printf("  Signals: %d long, %d short\n\n", longs, shorts)

	res, err := engine.New(cfg, log).Run(bars)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	trades := res.Ledger.Trades()
	if runExcludeRolls {
		trades = ledger.ExcludeExitReason(trades, ledger.ExitRoll)
	}

	printReport(cfg, res, trades)

	runID, err := writeJournal(cfg, res, trades)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if runID != "" {
		fmt.Printf("\nJournaled run %s\n", runID)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func printReport(cfg *config.Config, res *engine.Result, trades []ledger.Trade) {
	fmt.Printf("Run complete: %d trades, %d roll events (%d forced closes)\n",
		len(trades), len(res.RollEvents), forcedCloses(res.RollEvents))
	fmt.Printf("  Ignored signals: %d warmup, %d frozen\n", res.WarmupIgnored, res.FrozenIgnored)

	if dd, err := ledger.ComputeDrawdown(res.Equity); err != nil {
		fmt.Printf("  Max drawdown: n/a (%v)\n\n", err)
	} else {
		fmt.Printf("  Max drawdown: $%.2f (%.2f%%) peak %s trough %s\n\n",
			dd.MaxUSD, dd.MaxPct*100,
			dd.PeakTime.Format(time.RFC3339), dd.TroughTime.Format(time.RFC3339))
	}

	isTrades, oosTrades := ledger.SplitByEntryTime(trades, res.SplitTime)
	isEq, oosEq := ledger.SplitEquity(res.Equity, res.SplitTime)

	fmt.Printf("IS/OOS split at %s (%.0f%% in-sample)\n\n",
		res.SplitTime.Format(time.RFC3339), cfg.Analysis.ISFraction*100)

	printSlice(cfg, "FULL", trades, res.Equity)
	printSlice(cfg, "IS", isTrades, isEq)
	printSlice(cfg, "OOS", oosTrades, oosEq)
}

func printSlice(cfg *config.Config, label string, trades []ledger.Trade, eq []ledger.EquityPoint) {
	fmt.Printf("[%s]\n", label)

	s, err := stats.Compute(trades, eq, cfg.Analysis.BarsPerYear)
	if err != nil {
		fmt.Printf("  %v\n\n", err)
		return
	}

	fmt.Printf("  Trades: %d (%d W / %d L, win rate %.1f%%)\n",
		s.TotalTrades, s.WinningTrades, s.LosingTrades, s.WinRate*100)
	fmt.Printf("  Net profit: $%.2f  (gross +$%.2f / -$%.2f, PF %.2f)\n",
		s.NetProfit, s.GrossProfit, -s.GrossLoss, s.ProfitFactor)
	fmt.Printf("  Expectancy: $%.2f/trade  (avg win $%.2f, avg loss $%.2f)\n",
		s.Expectancy, s.AvgWin, s.AvgLoss)
	fmt.Printf("  CAGR: %.2f%%  Sharpe: %.2f\n", s.CAGR*100, s.Sharpe)

	b, err := stats.Bootstrap(trades, cfg.Analysis.BootstrapResamples,
		cfg.Analysis.Confidence, cfg.Analysis.BootstrapSeed)
	if err != nil {
		fmt.Printf("  Bootstrap: %v\n\n", err)
		return
	}
	fmt.Printf("  Expectancy %.0f%% CI: [$%.2f, $%.2f] over %d resamples\n\n",
		b.Confidence*100, b.CILower, b.CIUpper, b.Resamples)
}

func forcedCloses(events []engine.RollEvent) int {
	n := 0
	for _, e := range events {
		if e.ForcedClose {
			n++
		}
	}
	return n
}

// writeJournal persists the run through the configured sink. Returns the run
// ID, or "" when journaling is disabled.
func writeJournal(cfg *config.Config, res *engine.Result, trades []ledger.Trade) (string, error) {
	jtype := cfg.Journal.Type
	if runJournalType != "" {
		jtype = runJournalType
	}

	var j journal.Journal
	var err error
	switch jtype {
	case "none":
		return "", nil
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile, cfg.Journal.RollsFile)
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return "", fmt.Errorf("unknown journal type %q", jtype)
	}
	if err != nil {
		return "", err
	}
	defer j.Close()

	runID := id.NewRunID()

	cfgBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := j.RecordRun(journal.RunRecord{
		RunID:      runID,
		Created:    time.Now().UTC(),
		Instrument: cfg.Instrument.Symbol,
		Bars:       res.BarsProcessed,
		Trades:     len(trades),
		Config:     cfgBytes,
	}); err != nil {
		return "", err
	}

	for _, t := range trades {
		if err := j.RecordTrade(journal.TradeRecord{
			RunID:        runID,
			TradeID:      t.ID,
			Direction:    t.Direction.String(),
			EntryTime:    t.EntryTime,
			ExitTime:     t.ExitTime,
			EntryPrice:   t.EntryPrice,
			ExitPrice:    t.ExitPrice,
			GrossPnL:     t.GrossPnL,
			Commission:   t.Commission,
			NetPnL:       t.NetPnL,
			ExitReason:   string(t.ExitReason),
			DurationBars: t.DurationBars,
		}); err != nil {
			return "", err
		}
	}

	for _, p := range res.Equity {
		if err := j.RecordEquity(journal.EquityRecord{RunID: runID, Time: p.Time, Equity: p.Equity}); err != nil {
			return "", err
		}
	}

	for _, e := range res.RollEvents {
		if err := j.RecordRoll(journal.RollRecord{RunID: runID, Time: e.Time, ForcedClose: e.ForcedClose}); err != nil {
			return "", err
		}
	}

	return runID, nil
}
