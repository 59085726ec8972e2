package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradeledger",
	Short: "FIFO lot matching and P&L analytics over executed trades",
	Long: `tradeledger matches executed trades into closed lots under FIFO
discipline, derives a daily P&L series and summary statistics, and stores
the results in a SQLite or CSV journal.

Trades come in as a normalized CSV sorted ascending by execution time;
every run recomputes from the full history, so rerunning is idempotent.`,
}

func init() {
	rootCmd.AddCommand(cmdProcess)
	rootCmd.AddCommand(cmdReport)
	rootCmd.AddCommand(cmdPositions)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
