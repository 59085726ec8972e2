package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"tradeledger/trade"
)

var tradeHeader = []string{
	"id", "account_id", "symbol", "side", "quantity", "price", "executed_at", "note",
}

// ReadTrades loads normalized trades from a CSV file with the fixed header
// id,account_id,symbol,side,quantity,price,executed_at,note and RFC3339
// timestamps. The file must already be normalized and sorted ascending by
// executed_at; no broker-format detection or column mapping happens here.
func ReadTrades(path string) ([]trade.Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(tradeHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(tradeHeader), len(header))
	}
	for i, want := range tradeHeader {
		if header[i] != want {
			return nil, fmt.Errorf("column %d: expected %q, got %q", i, want, header[i])
		}
	}

	var trades []trade.Trade
	line := 1
	for {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		t, err := parseTrade(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func parseTrade(record []string) (trade.Trade, error) {
	side := trade.Side(record[3])
	if side != trade.Buy && side != trade.Sell {
		return trade.Trade{}, fmt.Errorf("bad side %q", record[3])
	}

	quantity, err := decimal.NewFromString(record[4])
	if err != nil {
		return trade.Trade{}, fmt.Errorf("bad quantity %q: %w", record[4], err)
	}
	if !quantity.IsPositive() {
		return trade.Trade{}, fmt.Errorf("quantity must be positive, got %q", record[4])
	}

	price, err := decimal.NewFromString(record[5])
	if err != nil {
		return trade.Trade{}, fmt.Errorf("bad price %q: %w", record[5], err)
	}
	if !price.IsPositive() {
		return trade.Trade{}, fmt.Errorf("price must be positive, got %q", record[5])
	}

	executedAt, err := time.Parse(time.RFC3339, record[6])
	if err != nil {
		return trade.Trade{}, fmt.Errorf("bad executed_at %q: %w", record[6], err)
	}

	return trade.Trade{
		ID:         record[0],
		AccountID:  record[1],
		Symbol:     record[2],
		Side:       side,
		Quantity:   quantity,
		Price:      price,
		ExecutedAt: executedAt,
		Note:       record[7],
	}, nil
}
