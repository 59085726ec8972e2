// Package fifo matches executed trades into closed lots under first-in
// first-out discipline, for both long and short positions.
package fifo

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tradeledger/id"
	"tradeledger/trade"
)

// openEntry is one still-open slice of a trade's quantity, queued per
// symbol and direction. Remaining starts at the trade's full quantity and
// shrinks as later trades match against it.
type openEntry struct {
	trade     trade.Trade
	remaining decimal.Decimal
}

// Engine runs FIFO matching over one account scope's trades. State is
// scoped to a single Process call chain; build a fresh Engine (or call
// Process, which resets) for every recomputation. Engines are not safe for
// concurrent use; match order is load-bearing. Independent accounts get
// independent engines.
type Engine struct {
	longs  map[string][]openEntry
	shorts map[string][]openEntry
	lots   []trade.ClosedLot
	log    *zap.Logger
}

// New returns an engine with empty queues. logger may be nil.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		longs:  make(map[string][]openEntry),
		shorts: make(map[string][]openEntry),
		log:    logger,
	}
}

// Process consumes trades sorted ascending by execution time and returns
// the closed lots in the order they were produced: closing trades in input
// order, and within one closing trade, FIFO order against the open queue.
//
// Precondition: trades are valid (positive quantity and price, known side)
// and time-ordered. The engine does not check either; out-of-order input
// yields lots whose open timestamp can postdate the close timestamp.
func (e *Engine) Process(trades []trade.Trade) []trade.ClosedLot {
	e.longs = make(map[string][]openEntry)
	e.shorts = make(map[string][]openEntry)
	e.lots = nil

	e.log.Info("matching trades", zap.Int("trades", len(trades)))

	for _, t := range trades {
		e.processTrade(t)
	}

	e.log.Info("matching complete", zap.Int("closed_lots", len(e.lots)))
	return e.lots
}

func (e *Engine) processTrade(t trade.Trade) {
	switch t.Side {
	case trade.Buy:
		// A buy first closes short opens, then opens long with the rest.
		remaining := e.matchAgainst(t, t.Quantity, e.shorts, trade.Short)
		if remaining.IsPositive() {
			e.longs[t.Symbol] = append(e.longs[t.Symbol], openEntry{trade: t, remaining: remaining})
			e.log.Debug("opened long",
				zap.String("symbol", t.Symbol),
				zap.String("quantity", remaining.String()),
				zap.String("price", t.Price.String()))
		}
	case trade.Sell:
		remaining := e.matchAgainst(t, t.Quantity, e.longs, trade.Long)
		if remaining.IsPositive() {
			e.shorts[t.Symbol] = append(e.shorts[t.Symbol], openEntry{trade: t, remaining: remaining})
			e.log.Debug("opened short",
				zap.String("symbol", t.Symbol),
				zap.String("quantity", remaining.String()),
				zap.String("price", t.Price.String()))
		}
	}
}

// matchAgainst consumes the head of the opposing queue until the closing
// quantity is exhausted or the queue empties, emitting one lot per match.
// Returns the unmatched remainder.
func (e *Engine) matchAgainst(closing trade.Trade, quantity decimal.Decimal, queues map[string][]openEntry, ptype trade.PositionType) decimal.Decimal {
	remaining := quantity
	queue := queues[closing.Symbol]

	for remaining.IsPositive() && len(queue) > 0 {
		head := &queue[0]

		matched := decimal.Min(remaining, head.remaining)
		lot := newClosedLot(head.trade, closing, matched, ptype)
		e.lots = append(e.lots, lot)

		remaining = remaining.Sub(matched)
		head.remaining = head.remaining.Sub(matched)
		if head.remaining.IsZero() {
			queue = queue[1:]
		}

		e.log.Debug("matched lot",
			zap.String("symbol", closing.Symbol),
			zap.String("type", string(ptype)),
			zap.String("quantity", matched.String()),
			zap.String("open_price", lot.OpenPrice.String()),
			zap.String("close_price", lot.ClosePrice.String()),
			zap.String("pnl", lot.RealizedPnL.String()))
	}

	if len(queue) == 0 {
		delete(queues, closing.Symbol)
	} else {
		queues[closing.Symbol] = queue
	}
	return remaining
}

// newClosedLot computes realized P&L at full precision and rounds half-up
// to cents exactly once, here. LONG profits when the close price exceeds
// the open; SHORT is the mirror.
func newClosedLot(open, closing trade.Trade, quantity decimal.Decimal, ptype trade.PositionType) trade.ClosedLot {
	var pnl decimal.Decimal
	if ptype == trade.Long {
		pnl = closing.Price.Sub(open.Price).Mul(quantity)
	} else {
		pnl = open.Price.Sub(closing.Price).Mul(quantity)
	}

	return trade.ClosedLot{
		LotID:        id.New(),
		AccountID:    open.AccountID,
		Symbol:       open.Symbol,
		PositionType: ptype,
		OpenTradeID:  open.ID,
		CloseTradeID: closing.ID,
		Quantity:     quantity,
		OpenPrice:    open.Price,
		ClosePrice:   closing.Price,
		OpenedAt:     open.ExecutedAt,
		ClosedAt:     closing.ExecutedAt,
		RealizedPnL:  pnl.Round(2),
	}
}
