package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeledger/trade"
)

func newTestCSV(t *testing.T) (*CSV, string, string) {
	t.Helper()

	dir := t.TempDir()
	lotsPath := filepath.Join(dir, "lots.csv")
	dailyPath := filepath.Join(dir, "daily.csv")

	j, err := NewCSV(lotsPath, dailyPath)
	require.NoError(t, err)

	return j, lotsPath, dailyPath
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVHeaders(t *testing.T) {
	t.Parallel()

	j, lotsPath, dailyPath := newTestCSV(t)
	require.NoError(t, j.Close())

	lotsRows := readAll(t, lotsPath)
	require.Len(t, lotsRows, 1)
	assert.Equal(t, lotHeader, lotsRows[0])

	dailyRows := readAll(t, dailyPath)
	require.Len(t, dailyRows, 1)
	assert.Equal(t, dailyHeader, dailyRows[0])
}

func TestCSVRecordLot(t *testing.T) {
	t.Parallel()

	j, lotsPath, _ := newTestCSV(t)

	closedAt := time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC)
	lot := trade.ClosedLot{
		LotID:        "L1",
		AccountID:    "acct-1",
		Symbol:       "AAPL",
		PositionType: trade.Short,
		OpenTradeID:  "t1",
		CloseTradeID: "t2",
		Quantity:     d("2.5"),
		OpenPrice:    d("160.00"),
		ClosePrice:   d("150.00"),
		OpenedAt:     closedAt.Add(-time.Hour),
		ClosedAt:     closedAt,
		RealizedPnL:  d("25.00"),
	}
	require.NoError(t, j.RecordLot(lot))
	require.NoError(t, j.Close())

	rows := readAll(t, lotsPath)
	require.Len(t, rows, 2)
	row := rows[1]
	assert.Equal(t, "L1", row[0])
	assert.Equal(t, "SHORT", row[3])
	assert.Equal(t, "2.5", row[6])
	assert.Equal(t, "2024-03-04T15:00:00Z", row[10])
	assert.Equal(t, "25", row[11]) // decimal String trims trailing zeros
}

func TestCSVRecordDay(t *testing.T) {
	t.Parallel()

	j, _, dailyPath := newTestCSV(t)

	day := trade.DayPnL{
		AccountID:  "acct-1",
		Date:       time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		PnL:        d("10.50"),
		Cumulative: d("110.50"),
		LotsClosed: 3,
	}
	require.NoError(t, j.RecordDay(day))
	require.NoError(t, j.Close())

	rows := readAll(t, dailyPath)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"acct-1", "2024-03-04", "10.5", "110.5", "3"}, rows[1])
}
