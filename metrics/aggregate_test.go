package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeledger/trade"
)

func TestAggregatesBasics(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	lots := []trade.ClosedLot{
		lotAt("AAPL", "100.00", utcDay(1)),
		lotAt("AAPL", "50.00", utcDay(2)),
		lotAt("MSFT", "-30.00", utcDay(3)),
		lotAt("TSLA", "0.00", utcDay(4)),
	}
	series := calc.DailySeries(lots, true)

	agg := calc.Aggregates(lots, series)

	assert.Equal(t, "acct-1", agg.AccountID)
	assert.True(t, agg.TotalPnL.Equal(d("120.00")))
	assert.Equal(t, 4, agg.TotalLots)
	assert.Equal(t, 2, agg.WinningLots)
	assert.Equal(t, 1, agg.LosingLots)
	assert.True(t, agg.TotalGains.Equal(d("150.00")))
	assert.True(t, agg.TotalLosses.Equal(d("-30.00")))

	require.NotNil(t, agg.WinRate)
	assert.True(t, agg.WinRate.Equal(d("0.5")), "got %s", agg.WinRate)

	require.NotNil(t, agg.ProfitFactor)
	assert.True(t, agg.ProfitFactor.Equal(d("5.00")), "got %s", agg.ProfitFactor)

	require.NotNil(t, agg.AverageGain)
	assert.True(t, agg.AverageGain.Equal(d("75.00")))
	require.NotNil(t, agg.AverageLoss)
	assert.True(t, agg.AverageLoss.Equal(d("-30.00")))

	assert.Equal(t, "AAPL", agg.BestSymbol)
	assert.True(t, agg.BestSymbolPnL.Equal(d("150.00")))
	assert.Equal(t, "MSFT", agg.WorstSymbol)
	assert.True(t, agg.WorstSymbolPnL.Equal(d("-30.00")))

	assert.Equal(t, "2024-03-01", agg.FirstDate.Format("2006-01-02"))
	assert.Equal(t, "2024-03-04", agg.LastDate.Format("2006-01-02"))
}

func TestAggregatesWinRateFourDecimals(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	lots := []trade.ClosedLot{
		lotAt("A", "1.00", utcDay(1)),
		lotAt("B", "-1.00", utcDay(1)),
		lotAt("C", "-1.00", utcDay(1)),
	}

	agg := calc.Aggregates(lots, calc.DailySeries(lots, true))
	require.NotNil(t, agg.WinRate)
	// 1/3 rounded half-up at the fourth decimal.
	assert.Equal(t, "0.3333", agg.WinRate.StringFixed(4))
}

func TestAggregatesProfitFactorUndefinedWithoutLosses(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	lots := []trade.ClosedLot{
		lotAt("AAPL", "100.00", utcDay(1)),
		lotAt("AAPL", "0.00", utcDay(2)),
	}

	agg := calc.Aggregates(lots, calc.DailySeries(lots, true))
	assert.Nil(t, agg.ProfitFactor)
	assert.Nil(t, agg.AverageLoss)
	require.NotNil(t, agg.AverageGain)
}

func TestAggregatesSymbolTieBreaksLexicographically(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	lots := []trade.ClosedLot{
		lotAt("ZM", "10.00", utcDay(1)),
		lotAt("AA", "10.00", utcDay(1)),
		lotAt("MM", "-10.00", utcDay(1)),
		lotAt("BB", "-10.00", utcDay(1)),
	}

	agg := calc.Aggregates(lots, calc.DailySeries(lots, true))
	assert.Equal(t, "AA", agg.BestSymbol)
	assert.Equal(t, "BB", agg.WorstSymbol)
}

func TestAggregatesWeekday(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	// 2024-03-01 is a Friday, 2024-03-04 a Monday (New York time).
	lots := []trade.ClosedLot{
		lotAt("A", "100.00", utcDay(1)),
		lotAt("B", "-40.00", utcDay(4)),
	}

	agg := calc.Aggregates(lots, calc.DailySeries(lots, true))
	assert.Equal(t, "Friday", agg.BestWeekday)
	assert.True(t, agg.BestWeekdayPnL.Equal(d("100.00")))
	assert.Equal(t, "Monday", agg.WorstWeekday)
	assert.True(t, agg.WorstWeekdayPnL.Equal(d("-40.00")))
}

func TestAggregatesWeekdayTieBreaksMondayFirst(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	// Same P&L on Monday (Mar 4) and Tuesday (Mar 5): ties resolve to the
	// earlier weekday for both best and worst.
	lots := []trade.ClosedLot{
		lotAt("A", "10.00", utcDay(4)),
		lotAt("B", "10.00", utcDay(5)),
	}

	agg := calc.Aggregates(lots, calc.DailySeries(lots, true))
	assert.Equal(t, "Monday", agg.BestWeekday)
	assert.Equal(t, "Monday", agg.WorstWeekday)
}

func TestAggregatesWeekdayUsesReferenceTimezone(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	// 02:00 UTC Saturday March 2 is still Friday evening in New York.
	lots := []trade.ClosedLot{
		lotAt("A", "10.00", time.Date(2024, 3, 2, 2, 0, 0, 0, time.UTC)),
	}

	agg := calc.Aggregates(lots, calc.DailySeries(lots, true))
	assert.Equal(t, "Friday", agg.BestWeekday)
}

func TestAggregatesEmptyInput(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	agg := calc.Aggregates(nil, nil)

	assert.Equal(t, "acct-1", agg.AccountID)
	assert.True(t, agg.TotalPnL.IsZero())
	assert.Zero(t, agg.TotalLots)
	assert.Nil(t, agg.WinRate)
	assert.Nil(t, agg.ProfitFactor)
	assert.Empty(t, agg.BestSymbol)
	assert.True(t, agg.FirstDate.IsZero())
}

func TestAggregatesTotalMatchesLotSum(t *testing.T) {
	t.Parallel()

	calc := newTestCalculator(t)
	lots := []trade.ClosedLot{
		lotAt("A", "1.11", utcDay(1)),
		lotAt("B", "-2.22", utcDay(2)),
		lotAt("C", "3.33", utcDay(3)),
		lotAt("D", "-0.01", utcDay(4)),
	}

	agg := calc.Aggregates(lots, calc.DailySeries(lots, true))

	sum := decimal.Zero
	for _, lot := range lots {
		sum = sum.Add(lot.RealizedPnL)
	}
	assert.True(t, agg.TotalPnL.Equal(sum))
	assert.True(t, agg.TotalGains.Add(agg.TotalLosses).Equal(sum))
}
