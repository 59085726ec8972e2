package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tradeledger/trade"
)

const lotColumns = `lot_id, account_id, symbol, position_type, open_trade_id,
	close_trade_id, quantity, open_price, close_price, opened_at, closed_at,
	realized_pnl`

// GetLot returns a single closed lot by ID.
func (j *SQLite) GetLot(lotID string) (trade.ClosedLot, error) {
	row := j.db.QueryRow(`
		SELECT `+lotColumns+`
		FROM closed_lots
		WHERE lot_id = ?`, lotID)

	lot, err := scanLot(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return trade.ClosedLot{}, fmt.Errorf("lot %q not found", lotID)
		}
		return trade.ClosedLot{}, err
	}
	return lot, nil
}

// ListLots returns every closed lot for an account, ordered by close time.
func (j *SQLite) ListLots(accountID string) ([]trade.ClosedLot, error) {
	return j.listLots(`
		SELECT `+lotColumns+`
		FROM closed_lots
		WHERE account_id = ?
		ORDER BY closed_at ASC, lot_id ASC`, accountID)
}

// ListLotsClosedBetween returns an account's lots with closed_at within
// [start, end). Windowed reporting re-runs the aggregate builder over this
// subset.
func (j *SQLite) ListLotsClosedBetween(accountID string, start, end time.Time) ([]trade.ClosedLot, error) {
	return j.listLots(`
		SELECT `+lotColumns+`
		FROM closed_lots
		WHERE account_id = ? AND closed_at >= ? AND closed_at < ?
		ORDER BY closed_at ASC, lot_id ASC`, accountID, start, end)
}

func (j *SQLite) listLots(query string, args ...any) ([]trade.ClosedLot, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trade.ClosedLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDays returns an account's daily P&L rows sorted by date.
func (j *SQLite) ListDays(accountID string) ([]trade.DayPnL, error) {
	rows, err := j.db.Query(`
		SELECT account_id, date, daily_pnl, cumulative_pnl, lots_closed
		FROM daily_pnl
		WHERE account_id = ?
		ORDER BY date ASC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trade.DayPnL
	for rows.Next() {
		var d trade.DayPnL
		var pnl, cumulative string
		if err := rows.Scan(&d.AccountID, &d.Date, &pnl, &cumulative, &d.LotsClosed); err != nil {
			return nil, err
		}
		if d.PnL, err = decimal.NewFromString(pnl); err != nil {
			return nil, err
		}
		if d.Cumulative, err = decimal.NewFromString(cumulative); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLot(s scanner) (trade.ClosedLot, error) {
	var lot trade.ClosedLot
	var ptype, quantity, openPrice, closePrice, pnl string

	if err := s.Scan(
		&lot.LotID, &lot.AccountID, &lot.Symbol, &ptype,
		&lot.OpenTradeID, &lot.CloseTradeID,
		&quantity, &openPrice, &closePrice,
		&lot.OpenedAt, &lot.ClosedAt, &pnl,
	); err != nil {
		return trade.ClosedLot{}, err
	}

	lot.PositionType = trade.PositionType(ptype)

	var err error
	if lot.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return trade.ClosedLot{}, err
	}
	if lot.OpenPrice, err = decimal.NewFromString(openPrice); err != nil {
		return trade.ClosedLot{}, err
	}
	if lot.ClosePrice, err = decimal.NewFromString(closePrice); err != nil {
		return trade.ClosedLot{}, err
	}
	if lot.RealizedPnL, err = decimal.NewFromString(pnl); err != nil {
		return trade.ClosedLot{}, err
	}
	return lot, nil
}
