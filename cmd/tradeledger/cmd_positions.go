package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tradeledger/fifo"
	"tradeledger/journal"
)

var positionsFlags struct {
	trades string
}

var cmdPositions = &cobra.Command{
	Use:   "positions",
	Short: "Show positions still open after matching a trade history",
	RunE:  runPositions,
}

func init() {
	cmdPositions.Flags().StringVar(&positionsFlags.trades, "trades", "", "path to normalized trades CSV (required)")
	_ = cmdPositions.MarkFlagRequired("trades")
}

func runPositions(cmd *cobra.Command, args []string) error {
	trades, err := journal.ReadTrades(positionsFlags.trades)
	if err != nil {
		return fmt.Errorf("read trades: %w", err)
	}

	engine := fifo.New(nil)
	engine.Process(trades)
	positions := engine.OpenPositions()

	if len(positions) == 0 {
		fmt.Println("no open positions")
		return nil
	}

	keys := make([]string, 0, len(positions))
	for key := range positions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Printf("%-12s %-6s %14s %12s %8s\n", "SYMBOL", "TYPE", "QUANTITY", "AVG PRICE", "ENTRIES")
	for _, key := range keys {
		p := positions[key]
		fmt.Printf("%-12s %-6s %14s %12s %8d\n",
			p.Symbol, p.PositionType, p.Quantity.String(), p.AveragePrice.String(), p.Entries)
	}
	return nil
}
