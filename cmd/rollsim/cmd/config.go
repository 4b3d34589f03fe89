package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/rollsim/config"
)

var configCmd = &cobra.Command{
	Use:   "config <path>",
	Short: "Write a default configuration file",
	Long: `Write the built-in default configuration (CME Euro FX, 6E) to the
given path. The extension picks the format: .yaml/.yml for YAML,
anything else for JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if err := cfg.SaveToFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("wrote default config to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
