// Package metrics derives the daily P&L series, summary aggregates, and
// extended analytics from closed lots.
package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradeledger/trade"
)

// ReferenceTimezone is the timezone daily buckets and weekdays are
// computed in. Market days roll over at New York midnight, not UTC.
const ReferenceTimezone = "America/New_York"

// Calculator derives series and aggregates for one account scope.
type Calculator struct {
	AccountID string
	Loc       *time.Location
	Log       *zap.Logger
}

// NewCalculator builds a Calculator for one account scope. An empty tz
// selects the reference timezone; logger may be nil.
func NewCalculator(accountID, tz string, logger *zap.Logger) (*Calculator, error) {
	if tz == "" {
		tz = ReferenceTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{AccountID: accountID, Loc: loc, Log: logger}, nil
}

// DailySeries groups lots by the calendar date of their close in the
// reference timezone and returns one row per day, sorted ascending, with a
// running cumulative total. With fillGaps set, days between the first and
// last activity date that saw no closes get zero rows so the series is
// contiguous. Empty input yields an empty series.
func (c *Calculator) DailySeries(lots []trade.ClosedLot, fillGaps bool) []trade.DayPnL {
	if len(lots) == 0 {
		return nil
	}

	type bucket struct {
		pnl  decimal.Decimal
		lots int
	}
	days := make(map[time.Time]bucket)

	for _, lot := range lots {
		day := c.dateOf(lot.ClosedAt)
		b := days[day]
		b.pnl = b.pnl.Add(lot.RealizedPnL)
		b.lots++
		days[day] = b
	}

	var minDay, maxDay time.Time
	for day := range days {
		if minDay.IsZero() || day.Before(minDay) {
			minDay = day
		}
		if maxDay.IsZero() || day.After(maxDay) {
			maxDay = day
		}
	}

	if fillGaps {
		for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
			if _, ok := days[day]; !ok {
				days[day] = bucket{pnl: decimal.Zero}
			}
		}
	}

	dates := make([]time.Time, 0, len(days))
	for day := range days {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	series := make([]trade.DayPnL, 0, len(dates))
	cumulative := decimal.Zero
	for _, day := range dates {
		b := days[day]
		cumulative = cumulative.Add(b.pnl)
		series = append(series, trade.DayPnL{
			AccountID:  c.AccountID,
			Date:       day,
			PnL:        b.pnl.Round(2),
			Cumulative: cumulative.Round(2),
			LotsClosed: b.lots,
		})
	}

	c.Log.Debug("daily series built",
		zap.Int("days", len(series)),
		zap.Time("from", minDay),
		zap.Time("to", maxDay))
	return series
}

// dateOf truncates an instant to midnight of its calendar day in the
// reference timezone.
func (c *Calculator) dateOf(t time.Time) time.Time {
	local := t.In(c.Loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.Loc)
}
