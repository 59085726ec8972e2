package metrics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"tradeledger/trade"
)

// leveragedETFs is the fixed reference set used for the leveraged-exposure
// fraction in Concentration.
var leveragedETFs = map[string]bool{
	"TQQQ": true, "SQQQ": true, "UPRO": true, "SPXU": true,
	"TNA": true, "TZA": true, "UDOW": true, "SDOW": true,
}

// ExtendedMetrics bundles the six independent reductions computed for
// downstream reporting. Each reduction is pure and defined on empty input.
type ExtendedMetrics struct {
	Holding       HoldingStats
	Concentration ConcentrationStats
	Streaks       StreakStats
	Timing        TimingStats
	Sizing        SizingStats
	Risk          RiskStats
}

// Extended computes all six reductions. The series is only needed for the
// drawdown/volatility figures.
func (c *Calculator) Extended(lots []trade.ClosedLot, series []trade.DayPnL) ExtendedMetrics {
	return ExtendedMetrics{
		Holding:       HoldingTimes(lots),
		Concentration: Concentration(lots),
		Streaks:       Streaks(lots),
		Timing:        c.Timing(lots),
		Sizing:        Sizing(lots),
		Risk:          Risk(series),
	}
}

// HoldingStats describes how long lots stay open, in minutes.
type HoldingStats struct {
	AvgMinutes       float64
	AvgWinnerMinutes float64
	AvgLoserMinutes  float64
	QuickFlipRate    float64 // fraction of lots held under 60 minutes
}

// HoldingTimes reports mean holding durations and the quick-flip rate.
func HoldingTimes(lots []trade.ClosedLot) HoldingStats {
	if len(lots) == 0 {
		return HoldingStats{}
	}

	var all, winners, losers []float64
	quickFlips := 0

	for _, lot := range lots {
		minutes := lot.ClosedAt.Sub(lot.OpenedAt).Minutes()
		all = append(all, minutes)
		if lot.RealizedPnL.IsPositive() {
			winners = append(winners, minutes)
		} else if lot.RealizedPnL.IsNegative() {
			losers = append(losers, minutes)
		}
		if minutes < 60 {
			quickFlips++
		}
	}

	return HoldingStats{
		AvgMinutes:       round1(mean(all)),
		AvgWinnerMinutes: round1(mean(winners)),
		AvgLoserMinutes:  round1(mean(losers)),
		QuickFlipRate:    round3(float64(quickFlips) / float64(len(lots))),
	}
}

// SymbolCount pairs a symbol with how many lots it closed.
type SymbolCount struct {
	Symbol string
	Count  int
}

// ConcentrationStats describes how concentrated activity is across symbols.
type ConcentrationStats struct {
	UniqueSymbols      int
	TopSymbols         []SymbolCount // up to three, most-traded first
	ConcentrationRatio float64       // top-3 lots / all lots
	LeveragedETFRate   float64       // fraction of lots in leveragedETFs
}

// Concentration reports symbol diversity and the top-3 concentration
// ratio. Count ties among symbols are broken lexicographically so the
// top-3 pick is deterministic.
func Concentration(lots []trade.ClosedLot) ConcentrationStats {
	if len(lots) == 0 {
		return ConcentrationStats{}
	}

	counts := make(map[string]int)
	leveraged := 0
	for _, lot := range lots {
		counts[lot.Symbol]++
		if leveragedETFs[lot.Symbol] {
			leveraged++
		}
	}

	ranked := make([]SymbolCount, 0, len(counts))
	for symbol, count := range counts {
		ranked = append(ranked, SymbolCount{Symbol: symbol, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Symbol < ranked[j].Symbol
	})

	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	topTotal := 0
	for _, sc := range top {
		topTotal += sc.Count
	}

	return ConcentrationStats{
		UniqueSymbols:      len(counts),
		TopSymbols:         top,
		ConcentrationRatio: round3(float64(topTotal) / float64(len(lots))),
		LeveragedETFRate:   round3(float64(leveraged) / float64(len(lots))),
	}
}

// StreakStats tracks consecutive win/loss runs in close-time order.
// Current is signed: positive for an active win run, negative for a loss
// run, zero after a breakeven lot.
type StreakStats struct {
	Current     int
	LongestWin  int
	LongestLoss int
}

// Streaks walks lots by close time and reports the current and longest
// runs. A breakeven lot resets both running counters.
func Streaks(lots []trade.ClosedLot) StreakStats {
	ordered := make([]trade.ClosedLot, len(lots))
	copy(ordered, lots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ClosedAt.Before(ordered[j].ClosedAt)
	})

	var stats StreakStats
	winRun, lossRun := 0, 0

	for _, lot := range ordered {
		switch {
		case lot.RealizedPnL.IsPositive():
			winRun++
			lossRun = 0
			stats.Current = winRun
			if winRun > stats.LongestWin {
				stats.LongestWin = winRun
			}
		case lot.RealizedPnL.IsNegative():
			lossRun++
			winRun = 0
			stats.Current = -lossRun
			if lossRun > stats.LongestLoss {
				stats.LongestLoss = lossRun
			}
		default:
			winRun, lossRun = 0, 0
			stats.Current = 0
		}
	}
	return stats
}

// TimingStats reports the close-hour and close-month buckets with the
// highest and lowest mean P&L, plus average lots per calendar day.
type TimingStats struct {
	BestHour        string // "HH:00-HH:00" span label
	BestHourAvgPnL  float64
	WorstHour       string
	WorstHourAvgPnL float64
	BestMonth       string
	BestMonthAvgPnL float64
	WorstMonth      string
	WorstMonthAvg   float64
	LotsPerDay      float64
}

// Timing buckets lots by close hour-of-day and close month in the
// reference timezone. Mean-P&L ties go to the earlier hour or month.
func (c *Calculator) Timing(lots []trade.ClosedLot) TimingStats {
	if len(lots) == 0 {
		return TimingStats{BestHour: "N/A", WorstHour: "N/A", BestMonth: "N/A", WorstMonth: "N/A"}
	}

	hourSums := make(map[int]float64)
	hourCounts := make(map[int]int)
	monthSums := make(map[int]float64)
	monthCounts := make(map[int]int)

	first := lots[0].ClosedAt
	last := lots[0].ClosedAt

	for _, lot := range lots {
		closed := lot.ClosedAt.In(c.Loc)
		pnl, _ := lot.RealizedPnL.Float64()
		hourSums[closed.Hour()] += pnl
		hourCounts[closed.Hour()]++
		monthSums[int(closed.Month())] += pnl
		monthCounts[int(closed.Month())]++

		if lot.ClosedAt.Before(first) {
			first = lot.ClosedAt
		}
		if lot.ClosedAt.After(last) {
			last = lot.ClosedAt
		}
	}

	bestHour, bestHourAvg := pickBucket(hourSums, hourCounts, true)
	worstHour, worstHourAvg := pickBucket(hourSums, hourCounts, false)
	bestMonth, bestMonthAvg := pickBucket(monthSums, monthCounts, true)
	worstMonth, worstMonthAvg := pickBucket(monthSums, monthCounts, false)

	days := int(last.Sub(first).Hours()/24) + 1

	return TimingStats{
		BestHour:        hourLabel(bestHour),
		BestHourAvgPnL:  round2(bestHourAvg),
		WorstHour:       hourLabel(worstHour),
		WorstHourAvgPnL: round2(worstHourAvg),
		BestMonth:       time.Month(bestMonth).String(),
		BestMonthAvgPnL: round2(bestMonthAvg),
		WorstMonth:      time.Month(worstMonth).String(),
		WorstMonthAvg:   round2(worstMonthAvg),
		LotsPerDay:      round1(float64(len(lots)) / float64(days)),
	}
}

// pickBucket selects the bucket key with the highest (or lowest) mean,
// ties to the smaller key.
func pickBucket(sums map[int]float64, counts map[int]int, best bool) (int, float64) {
	keys := make([]int, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	pickKey := keys[0]
	pickAvg := sums[pickKey] / float64(counts[pickKey])
	for _, k := range keys[1:] {
		avg := sums[k] / float64(counts[k])
		if (best && avg > pickAvg) || (!best && avg < pickAvg) {
			pickKey, pickAvg = k, avg
		}
	}
	return pickKey, pickAvg
}

func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", hour, hour+1)
}

// SizingStats describes the distribution of absolute opening quantities.
type SizingStats struct {
	AvgSize          float64
	StdDev           float64
	Largest          float64
	Smallest         float64
	ConsistencyScore float64 // clamp(1 - stddev/mean, 0, 1)
}

// Sizing reports position-size statistics over matched quantities.
func Sizing(lots []trade.ClosedLot) SizingStats {
	if len(lots) == 0 {
		return SizingStats{}
	}

	sizes := make([]float64, 0, len(lots))
	for _, lot := range lots {
		q, _ := lot.Quantity.Abs().Float64()
		sizes = append(sizes, q)
	}

	avg := mean(sizes)
	sd := stddev(sizes, avg)

	consistency := 0.0
	if avg > 0 {
		consistency = clamp01(1 - sd/avg)
	}

	largest, smallest := sizes[0], sizes[0]
	for _, s := range sizes[1:] {
		largest = math.Max(largest, s)
		smallest = math.Min(smallest, s)
	}

	return SizingStats{
		AvgSize:          round1(avg),
		StdDev:           round1(sd),
		Largest:          round1(largest),
		Smallest:         round1(smallest),
		ConsistencyScore: round3(consistency),
	}
}

// RiskStats holds drawdown and volatility over the daily series.
type RiskStats struct {
	MaxDrawdown     float64 // deepest peak-to-trough fall of cumulative P&L
	DailyVolatility float64 // population stddev of daily P&L
}

// Risk walks the cumulative series tracking the running peak.
func Risk(series []trade.DayPnL) RiskStats {
	if len(series) == 0 {
		return RiskStats{}
	}

	dailies := make([]float64, 0, len(series))
	maxDrawdown := 0.0
	peak := math.Inf(-1)

	for _, day := range series {
		cumulative, _ := day.Cumulative.Float64()
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDrawdown {
			maxDrawdown = dd
		}
		pnl, _ := day.PnL.Float64()
		dailies = append(dailies, pnl)
	}

	avg := mean(dailies)
	return RiskStats{
		MaxDrawdown:     round2(maxDrawdown),
		DailyVolatility: round2(stddev(dailies, avg)),
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64, avg float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	variance := 0.0
	for _, x := range xs {
		variance += (x - avg) * (x - avg)
	}
	return math.Sqrt(variance / float64(len(xs)))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
