package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"tradeledger/trade"
)

// CSV writes lots and daily rows to two CSV files. Aggregates are not
// exported here; they are a single record and belong in the report output.
type CSV struct {
	lots  *csv.Writer
	daily *csv.Writer
	lf    *os.File
	df    *os.File
}

var lotHeader = []string{
	"lot_id", "account_id", "symbol", "position_type", "open_trade_id",
	"close_trade_id", "quantity", "open_price", "close_price", "opened_at",
	"closed_at", "realized_pnl",
}

var dailyHeader = []string{
	"account_id", "date", "daily_pnl", "cumulative_pnl", "lots_closed",
}

func NewCSV(lotsPath, dailyPath string) (*CSV, error) {
	lf, err := os.Create(lotsPath)
	if err != nil {
		return nil, err
	}
	df, err := os.Create(dailyPath)
	if err != nil {
		lf.Close()
		return nil, err
	}

	lw := csv.NewWriter(lf)
	dw := csv.NewWriter(df)

	if err := lw.Write(lotHeader); err != nil {
		return nil, err
	}
	if err := dw.Write(dailyHeader); err != nil {
		return nil, err
	}

	lw.Flush()
	if err := lw.Error(); err != nil {
		return nil, err
	}
	dw.Flush()
	if err := dw.Error(); err != nil {
		return nil, err
	}

	return &CSV{lots: lw, daily: dw, lf: lf, df: df}, nil
}

func (j *CSV) RecordLot(l trade.ClosedLot) error {
	err := j.lots.Write([]string{
		l.LotID,
		l.AccountID,
		l.Symbol,
		string(l.PositionType),
		l.OpenTradeID,
		l.CloseTradeID,
		l.Quantity.String(),
		l.OpenPrice.String(),
		l.ClosePrice.String(),
		l.OpenedAt.Format(time.RFC3339),
		l.ClosedAt.Format(time.RFC3339),
		l.RealizedPnL.String(),
	})
	if err != nil {
		return err
	}
	j.lots.Flush()
	return j.lots.Error()
}

func (j *CSV) RecordDay(d trade.DayPnL) error {
	err := j.daily.Write([]string{
		d.AccountID,
		d.Date.Format("2006-01-02"),
		d.PnL.String(),
		d.Cumulative.String(),
		strconv.Itoa(d.LotsClosed),
	})
	if err != nil {
		return err
	}
	j.daily.Flush()
	return j.daily.Error()
}

// RecordAggregate is a no-op for the CSV backend.
func (j *CSV) RecordAggregate(trade.Aggregate) error { return nil }

func (j *CSV) Close() error {
	j.lots.Flush()
	if err := j.lots.Error(); err != nil {
		return err
	}
	j.daily.Flush()
	if err := j.daily.Error(); err != nil {
		return err
	}

	if err := j.lf.Close(); err != nil {
		return err
	}
	return j.df.Close()
}
