package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"tradeledger/trade"
)

// SQLite stores pipeline outputs in a single SQLite database. Monetary
// columns are stored as decimal strings, never floats, so values round-trip
// exactly.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Reset removes all stored rows for one account scope. A recompute calls
// this first so reruns are idempotent at the store level too.
func (j *SQLite) Reset(accountID string) error {
	for _, table := range []string{"closed_lots", "daily_pnl", "aggregates"} {
		if _, err := j.db.Exec(
			fmt.Sprintf("DELETE FROM %s WHERE account_id = ?", table), accountID,
		); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

func (j *SQLite) RecordLot(l trade.ClosedLot) error {
	_, err := j.db.Exec(`
		INSERT INTO closed_lots
		(lot_id, account_id, symbol, position_type, open_trade_id, close_trade_id,
		 quantity, open_price, close_price, opened_at, closed_at, realized_pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.LotID, l.AccountID, l.Symbol, string(l.PositionType),
		l.OpenTradeID, l.CloseTradeID,
		l.Quantity.String(), l.OpenPrice.String(), l.ClosePrice.String(),
		l.OpenedAt, l.ClosedAt, l.RealizedPnL.String(),
	)
	return err
}

func (j *SQLite) RecordDay(d trade.DayPnL) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO daily_pnl
		(account_id, date, daily_pnl, cumulative_pnl, lots_closed)
		VALUES (?, ?, ?, ?, ?)`,
		d.AccountID, d.Date, d.PnL.String(), d.Cumulative.String(), d.LotsClosed,
	)
	return err
}

func (j *SQLite) RecordAggregate(a trade.Aggregate) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO aggregates
		(account_id, total_pnl, total_lots, winning_lots, losing_lots,
		 total_gains, total_losses, win_rate, profit_factor, average_gain,
		 average_loss, best_symbol, best_symbol_pnl, worst_symbol,
		 worst_symbol_pnl, best_weekday, best_weekday_pnl, worst_weekday,
		 worst_weekday_pnl, first_date, last_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.AccountID, a.TotalPnL.String(), a.TotalLots, a.WinningLots, a.LosingLots,
		a.TotalGains.String(), a.TotalLosses.String(),
		decimalOrNull(a.WinRate), decimalOrNull(a.ProfitFactor),
		decimalOrNull(a.AverageGain), decimalOrNull(a.AverageLoss),
		a.BestSymbol, decimalOrNull(a.BestSymbolPnL),
		a.WorstSymbol, decimalOrNull(a.WorstSymbolPnL),
		a.BestWeekday, decimalOrNull(a.BestWeekdayPnL),
		a.WorstWeekday, decimalOrNull(a.WorstWeekdayPnL),
		a.FirstDate, a.LastDate,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func decimalOrNull(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
