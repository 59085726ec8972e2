package fifo

import (
	"github.com/shopspring/decimal"

	"tradeledger/trade"
)

// OpenPositions snapshots the quantity still open after Process. The map is
// keyed by symbol; when a symbol somehow has both directions open, the
// short side is keyed "<symbol>_SHORT" so neither is silently dropped.
func (e *Engine) OpenPositions() map[string]trade.Position {
	positions := make(map[string]trade.Position)

	for symbol, queue := range e.longs {
		positions[symbol] = summarize(symbol, trade.Long, queue)
	}
	for symbol, queue := range e.shorts {
		key := symbol
		if _, exists := positions[key]; exists {
			key = symbol + "_SHORT"
		}
		positions[key] = summarize(symbol, trade.Short, queue)
	}
	return positions
}

func summarize(symbol string, ptype trade.PositionType, queue []openEntry) trade.Position {
	total := decimal.Zero
	weighted := decimal.Zero
	for _, entry := range queue {
		total = total.Add(entry.remaining)
		weighted = weighted.Add(entry.trade.Price.Mul(entry.remaining))
	}

	avg := decimal.Zero
	if total.IsPositive() {
		avg = weighted.Div(total).Round(2)
	}

	return trade.Position{
		Symbol:       symbol,
		PositionType: ptype,
		Quantity:     total,
		AveragePrice: avg,
		Entries:      len(queue),
	}
}
