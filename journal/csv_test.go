package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewCSVBadPaths(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope")

	_, err := NewCSV(filepath.Join(missing, "trades.csv"), filepath.Join(dir, "capital.csv"))
	assert.Error(t, err)

	// The capital file failing must not leak the already-opened trades
	// file: a second attempt over the same trades path still works.
	tradesPath := filepath.Join(dir, "trades.csv")
	_, err = NewCSV(tradesPath, filepath.Join(missing, "capital.csv"))
	require.Error(t, err)

	j, err := NewCSV(tradesPath, filepath.Join(dir, "capital.csv"))
	require.NoError(t, err)
	require.NoError(t, j.Close())
}

func TestCSVJournal(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	capitalPath := filepath.Join(dir, "capital.csv")

	j, err := NewCSV(tradesPath, capitalPath)
	require.NoError(t, err)

	closeTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(TradeRecord{
		TradeID:    "T-1",
		EntryPrice: 100,
		ExitPrice:  97.5,
		OpenTime:   closeTime.Add(-time.Hour),
		CloseTime:  closeTime,
		PnL:        -2.5,
		Reason:     "StopLoss",
	}))
	require.NoError(t, j.RecordCapital(CapitalSnapshot{Time: closeTime, Capital: 997.5}))
	require.NoError(t, j.Close())

	trades := readAll(t, tradesPath)
	require.Len(t, trades, 2)
	assert.Equal(t, []string{"trade_id", "entry_price", "exit_price", "open_time", "close_time", "pnl", "reason"}, trades[0])
	assert.Equal(t, "T-1", trades[1][0])
	assert.Equal(t, "-2.500000", trades[1][5])
	assert.Equal(t, "StopLoss", trades[1][6])

	capital := readAll(t, capitalPath)
	require.Len(t, capital, 2)
	assert.Equal(t, []string{"time", "capital"}, capital[0])
	assert.Equal(t, "997.500000", capital[1][1])
}
