package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meanrev",
	Short: "A mean-reversion strategy backtester",
	Long: `Meanrev simulates an oscillator-driven mean-reversion strategy over a
historical price series and compares it to a buy-and-hold baseline.

It provides tools for:
  - Backtesting the strategy over CSV price series
  - Volatility-sized stops with a trailing-stop ratchet
  - Trade and capital journaling (CSV or SQLite)
  - Win-rate, risk/reward and capital-curve statistics`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
