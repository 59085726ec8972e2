package metrics

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradeledger/trade"
)

var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Aggregates reduces a lot collection to one summary record. The series is
// consulted only for the first/last activity dates. Sums are exact; ratios
// are computed from the exact sums and rounded once here. Profit factor is
// nil when there are no losses, and the per-side averages are nil when that
// side is empty. Empty input returns a zero Aggregate.
//
// Ties on best/worst symbol P&L go to the lexicographically smaller symbol;
// ties on weekday go to the earlier weekday, Monday first.
func (c *Calculator) Aggregates(lots []trade.ClosedLot, series []trade.DayPnL) trade.Aggregate {
	agg := trade.Aggregate{AccountID: c.AccountID}
	if len(lots) == 0 {
		return agg
	}

	totalPnL := decimal.Zero
	totalGains := decimal.Zero
	totalLosses := decimal.Zero
	winners, losers := 0, 0

	symbolPnL := make(map[string]decimal.Decimal)
	weekdayPnL := make(map[string]decimal.Decimal)

	for _, lot := range lots {
		totalPnL = totalPnL.Add(lot.RealizedPnL)
		switch {
		case lot.RealizedPnL.IsPositive():
			winners++
			totalGains = totalGains.Add(lot.RealizedPnL)
		case lot.RealizedPnL.IsNegative():
			losers++
			totalLosses = totalLosses.Add(lot.RealizedPnL)
		}

		symbolPnL[lot.Symbol] = symbolPnL[lot.Symbol].Add(lot.RealizedPnL)

		closed := lot.ClosedAt.In(c.Loc)
		name := weekdayNames[mondayIndex(closed.Weekday())]
		weekdayPnL[name] = weekdayPnL[name].Add(lot.RealizedPnL)
	}

	agg.TotalPnL = totalPnL.Round(2)
	agg.TotalLots = len(lots)
	agg.WinningLots = winners
	agg.LosingLots = losers
	agg.TotalGains = totalGains.Round(2)
	agg.TotalLosses = totalLosses.Round(2)

	winRate := decimal.NewFromInt(int64(winners)).
		Div(decimal.NewFromInt(int64(len(lots)))).Round(4)
	agg.WinRate = &winRate

	if totalLosses.IsNegative() {
		pf := totalGains.Div(totalLosses.Abs()).Round(2)
		agg.ProfitFactor = &pf
	}
	if winners > 0 {
		avg := totalGains.Div(decimal.NewFromInt(int64(winners))).Round(2)
		agg.AverageGain = &avg
	}
	if losers > 0 {
		avg := totalLosses.Div(decimal.NewFromInt(int64(losers))).Round(2)
		agg.AverageLoss = &avg
	}

	bestSym, bestSymPnL := pickBest(symbolPnL, lessLex)
	worstSym, worstSymPnL := pickWorst(symbolPnL, lessLex)
	agg.BestSymbol = bestSym
	agg.BestSymbolPnL = roundPtr(bestSymPnL)
	agg.WorstSymbol = worstSym
	agg.WorstSymbolPnL = roundPtr(worstSymPnL)

	bestDay, bestDayPnL := pickBest(weekdayPnL, lessWeekday)
	worstDay, worstDayPnL := pickWorst(weekdayPnL, lessWeekday)
	agg.BestWeekday = bestDay
	agg.BestWeekdayPnL = roundPtr(bestDayPnL)
	agg.WorstWeekday = worstDay
	agg.WorstWeekdayPnL = roundPtr(worstDayPnL)

	if len(series) > 0 {
		agg.FirstDate = series[0].Date
		agg.LastDate = series[len(series)-1].Date
	}

	c.Log.Info("aggregates computed",
		zap.String("total_pnl", agg.TotalPnL.String()),
		zap.Int("lots", agg.TotalLots),
		zap.String("win_rate", winRate.String()))
	return agg
}

// mondayIndex maps time.Weekday (Sunday=0) onto Monday-first ordering.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func lessLex(a, b string) bool { return a < b }

func lessWeekday(a, b string) bool { return weekdayRank(a) < weekdayRank(b) }

func weekdayRank(name string) int {
	for i, n := range weekdayNames {
		if n == name {
			return i
		}
	}
	return len(weekdayNames)
}

// pickBest returns the key with the maximum value; ties go to the key that
// sorts first under less.
func pickBest(m map[string]decimal.Decimal, less func(a, b string) bool) (string, decimal.Decimal) {
	var bestKey string
	var bestVal decimal.Decimal
	first := true
	for key, val := range m {
		switch {
		case first, val.GreaterThan(bestVal):
			bestKey, bestVal = key, val
			first = false
		case val.Equal(bestVal) && less(key, bestKey):
			bestKey = key
		}
	}
	return bestKey, bestVal
}

func pickWorst(m map[string]decimal.Decimal, less func(a, b string) bool) (string, decimal.Decimal) {
	var worstKey string
	var worstVal decimal.Decimal
	first := true
	for key, val := range m {
		switch {
		case first, val.LessThan(worstVal):
			worstKey, worstVal = key, val
			first = false
		case val.Equal(worstVal) && less(key, worstKey):
			worstKey = key
		}
	}
	return worstKey, worstVal
}

func roundPtr(d decimal.Decimal) *decimal.Decimal {
	r := d.Round(2)
	return &r
}
