// Package journal persists the outputs of a pipeline run (closed lots,
// daily P&L rows, aggregates) and reads them back for reporting.
// Matching state itself is never persisted; a recomputation always starts
// from the full trade history.
package journal

import (
	"tradeledger/trade"
)

// Recorder is the write side of a journal backend.
type Recorder interface {
	RecordLot(trade.ClosedLot) error
	RecordDay(trade.DayPnL) error
	RecordAggregate(trade.Aggregate) error
	Close() error
}
