package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tradeledger/metrics"
	"tradeledger/trade"
)

func printSeries(series []trade.DayPnL) {
	if len(series) == 0 {
		return
	}
	fmt.Printf("\n%-12s %12s %14s %6s\n", "DATE", "PNL", "CUMULATIVE", "LOTS")
	for _, day := range series {
		fmt.Printf("%-12s %12s %14s %6d\n",
			day.Date.Format("2006-01-02"), day.PnL.String(), day.Cumulative.String(), day.LotsClosed)
	}
}

func printAggregate(a trade.Aggregate) {
	fmt.Println("\nSummary")
	fmt.Printf("  total pnl:      %s\n", a.TotalPnL.String())
	fmt.Printf("  lots closed:    %d (%d won / %d lost)\n", a.TotalLots, a.WinningLots, a.LosingLots)
	fmt.Printf("  gains/losses:   %s / %s\n", a.TotalGains.String(), a.TotalLosses.String())
	fmt.Printf("  win rate:       %s\n", decimalOrNA(a.WinRate))
	fmt.Printf("  profit factor:  %s\n", decimalOrNA(a.ProfitFactor))
	fmt.Printf("  avg gain/loss:  %s / %s\n", decimalOrNA(a.AverageGain), decimalOrNA(a.AverageLoss))
	if a.BestSymbol != "" {
		fmt.Printf("  best symbol:    %s (%s)\n", a.BestSymbol, decimalOrNA(a.BestSymbolPnL))
		fmt.Printf("  worst symbol:   %s (%s)\n", a.WorstSymbol, decimalOrNA(a.WorstSymbolPnL))
		fmt.Printf("  best weekday:   %s (%s)\n", a.BestWeekday, decimalOrNA(a.BestWeekdayPnL))
		fmt.Printf("  worst weekday:  %s (%s)\n", a.WorstWeekday, decimalOrNA(a.WorstWeekdayPnL))
	}
	if !a.FirstDate.IsZero() {
		fmt.Printf("  active:         %s to %s\n",
			a.FirstDate.Format("2006-01-02"), a.LastDate.Format("2006-01-02"))
	}
}

func printExtended(m metrics.ExtendedMetrics) {
	fmt.Println("\nPatterns")
	fmt.Printf("  avg hold:       %.1f min (winners %.1f, losers %.1f), quick flips %.1f%%\n",
		m.Holding.AvgMinutes, m.Holding.AvgWinnerMinutes, m.Holding.AvgLoserMinutes,
		m.Holding.QuickFlipRate*100)
	fmt.Printf("  symbols:        %d unique, top-3 %.1f%% of lots, leveraged %.1f%%\n",
		m.Concentration.UniqueSymbols, m.Concentration.ConcentrationRatio*100,
		m.Concentration.LeveragedETFRate*100)
	for _, sc := range m.Concentration.TopSymbols {
		fmt.Printf("                  %s x%d\n", sc.Symbol, sc.Count)
	}
	fmt.Printf("  streaks:        current %+d, longest win %d, longest loss %d\n",
		m.Streaks.Current, m.Streaks.LongestWin, m.Streaks.LongestLoss)
	fmt.Printf("  timing:         best hour %s (%.2f), worst hour %s (%.2f)\n",
		m.Timing.BestHour, m.Timing.BestHourAvgPnL, m.Timing.WorstHour, m.Timing.WorstHourAvgPnL)
	fmt.Printf("                  best month %s (%.2f), worst month %s (%.2f), %.1f lots/day\n",
		m.Timing.BestMonth, m.Timing.BestMonthAvgPnL, m.Timing.WorstMonth, m.Timing.WorstMonthAvg,
		m.Timing.LotsPerDay)
	fmt.Printf("  sizing:         avg %.1f (sd %.1f, min %.1f, max %.1f), consistency %.3f\n",
		m.Sizing.AvgSize, m.Sizing.StdDev, m.Sizing.Smallest, m.Sizing.Largest,
		m.Sizing.ConsistencyScore)
	fmt.Printf("  risk:           max drawdown %.2f, daily volatility %.2f\n",
		m.Risk.MaxDrawdown, m.Risk.DailyVolatility)
}

func decimalOrNA(d *decimal.Decimal) string {
	if d == nil {
		return "n/a"
	}
	return d.String()
}
