package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rollsim",
	Short: "A roll-aware bar-replay simulator for futures strategies",
	Long: `Rollsim replays historical futures bars through a rule-based strategy
with contract-roll handling and one-bar execution lag.

It provides tools for:
  - Replaying minute bar data with session filtering and resampling
  - Forced position closes and entry freezes around contract rolls
  - Slippage and commission accounting per trade
  - In-sample / out-of-sample performance splits
  - Bootstrap confidence intervals on trade expectancy
  - Journaling trades, equity and roll events to CSV or SQLite`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
