package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeledger/trade"
)

func writeTradesCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trades.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const tradesCSVHeader = "id,account_id,symbol,side,quantity,price,executed_at,note\n"

func TestReadTrades(t *testing.T) {
	t.Parallel()

	path := writeTradesCSV(t, tradesCSVHeader+
		"t1,acct-1,AAPL,BUY,100,150.00,2024-03-04T14:30:00Z,opening\n"+
		"t2,acct-1,AAPL,SELL,100,160.00,2024-03-04T15:30:00Z,\n")

	trades, err := ReadTrades(path)
	require.NoError(t, err)
	require.Len(t, trades, 2)

	assert.Equal(t, "t1", trades[0].ID)
	assert.Equal(t, "acct-1", trades[0].AccountID)
	assert.Equal(t, trade.Buy, trades[0].Side)
	assert.True(t, trades[0].Quantity.Equal(d("100")))
	assert.True(t, trades[0].Price.Equal(d("150.00")))
	assert.Equal(t, "opening", trades[0].Note)
	assert.Equal(t, trade.Sell, trades[1].Side)
	assert.True(t, trades[1].ExecutedAt.After(trades[0].ExecutedAt))
}

func TestReadTradesEmptyFileHasHeaderOnly(t *testing.T) {
	t.Parallel()

	path := writeTradesCSV(t, tradesCSVHeader)
	trades, err := ReadTrades(path)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestReadTradesRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "wrong_header",
			content: "symbol,side\nAAPL,BUY\n",
			wantErr: "columns",
		},
		{
			name:    "bad_side",
			content: tradesCSVHeader + "t1,a,AAPL,HOLD,1,1.00,2024-03-04T14:30:00Z,\n",
			wantErr: "bad side",
		},
		{
			name:    "zero_quantity",
			content: tradesCSVHeader + "t1,a,AAPL,BUY,0,1.00,2024-03-04T14:30:00Z,\n",
			wantErr: "quantity must be positive",
		},
		{
			name:    "negative_price",
			content: tradesCSVHeader + "t1,a,AAPL,BUY,1,-1.00,2024-03-04T14:30:00Z,\n",
			wantErr: "price must be positive",
		},
		{
			name:    "bad_timestamp",
			content: tradesCSVHeader + "t1,a,AAPL,BUY,1,1.00,yesterday,\n",
			wantErr: "bad executed_at",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTradesCSV(t, tc.content)
			_, err := ReadTrades(path)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
