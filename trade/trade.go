// Package trade holds the domain records shared by the matching engine,
// the metrics layer, and the journal.
package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of an executed trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// PositionType says how a lot was opened: LONG by buying, SHORT by selling.
type PositionType string

const (
	Long  PositionType = "LONG"
	Short PositionType = "SHORT"
)

// Trade is a single normalized execution. Trades arrive already validated
// and sorted ascending by ExecutedAt; the engine does not re-check either.
type Trade struct {
	ID         string
	AccountID  string
	Symbol     string
	Side       Side
	Quantity   decimal.Decimal // positive, up to 8 fractional digits
	Price      decimal.Decimal // positive, 2 fractional digits
	ExecutedAt time.Time
	Note       string
}

// ClosedLot is one matched (open, close) quantity pair with realized P&L.
// A single trade can be split across several lots, and a closing trade can
// produce several lots from one execution.
type ClosedLot struct {
	LotID        string
	AccountID    string
	Symbol       string
	PositionType PositionType
	OpenTradeID  string
	CloseTradeID string
	Quantity     decimal.Decimal // matched quantity, > 0
	OpenPrice    decimal.Decimal
	ClosePrice   decimal.Decimal
	OpenedAt     time.Time
	ClosedAt     time.Time
	RealizedPnL  decimal.Decimal // 2dp, rounded half-up once at creation
}

// Position is a snapshot of still-open quantity for one symbol/direction.
type Position struct {
	Symbol       string
	PositionType PositionType
	Quantity     decimal.Decimal
	AveragePrice decimal.Decimal // quantity-weighted, 2dp half-up
	Entries      int
}

// DayPnL is one calendar day of realized P&L in the reference timezone.
// Date holds midnight of that day; Cumulative is the running total through
// the day inclusive.
type DayPnL struct {
	AccountID  string
	Date       time.Time
	PnL        decimal.Decimal
	Cumulative decimal.Decimal
	LotsClosed int
}

// Aggregate is the summary record for one account scope. Ratio fields that
// have no defined value (profit factor with zero losses, averages with no
// lots on that side) are nil rather than zero.
type Aggregate struct {
	AccountID       string
	TotalPnL        decimal.Decimal
	TotalLots       int
	WinningLots     int
	LosingLots      int
	TotalGains      decimal.Decimal
	TotalLosses     decimal.Decimal // signed, <= 0
	WinRate         *decimal.Decimal
	ProfitFactor    *decimal.Decimal
	AverageGain     *decimal.Decimal
	AverageLoss     *decimal.Decimal
	BestSymbol      string
	BestSymbolPnL   *decimal.Decimal
	WorstSymbol     string
	WorstSymbolPnL  *decimal.Decimal
	BestWeekday     string
	BestWeekdayPnL  *decimal.Decimal
	WorstWeekday    string
	WorstWeekdayPnL *decimal.Decimal
	FirstDate       time.Time
	LastDate        time.Time
}
