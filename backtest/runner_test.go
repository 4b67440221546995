package backtest

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/meanrev/journal"
	"github.com/rustyeddy/meanrev/market"
	"github.com/rustyeddy/meanrev/sim"
)

type memJournal struct {
	trades  []journal.TradeRecord
	capital []journal.CapitalSnapshot
}

func (j *memJournal) RecordTrade(rec journal.TradeRecord) error {
	j.trades = append(j.trades, rec)
	return nil
}

func (j *memJournal) RecordCapital(rec journal.CapitalSnapshot) error {
	j.capital = append(j.capital, rec)
	return nil
}

func (j *memJournal) Close() error { return nil }

func bars(closes ...float64) market.Series {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(market.Series, 0, len(closes))
	for i, c := range closes {
		s = append(s, market.Bar{Time: t0.Add(time.Duration(i) * time.Hour), Close: c})
	}
	return s
}

func newRunner(s market.Series, window int) *Runner {
	return &Runner{
		Series:         s,
		Window:         window,
		InitialCapital: 1000,
		Sim:            sim.DefaultConfig(),
	}
}

func TestRunFlatSeriesNoTrades(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	r := newRunner(bars(closes...), 14)

	res, err := r.Run()
	require.NoError(t, err)

	// The oscillator never defines a value, so the machine never enters.
	// The run still produces a complete result.
	assert.Equal(t, 0, res.Stats.Trades)
	assert.Equal(t, 0.0, res.Stats.WinRate)
	assert.False(t, res.Stats.HasRiskReward())
	assert.Nil(t, res.OpenAtEnd)
	assert.Equal(t, 1000.0, res.FinalBuyHold())
	assert.Equal(t, 1000.0, res.FinalCapital())
	require.Len(t, res.Signals, 20)
	for _, sig := range res.Signals {
		assert.Equal(t, sim.None, sig)
	}
}

func TestRunDipAndRecover(t *testing.T) {
	// Two down bars push the window-2 oscillator to 0 (entry at 80);
	// two up bars push it to 100 (overbought exit at 95).
	r := newRunner(bars(100, 90, 80, 85, 95), 2)

	res, err := r.Run()
	require.NoError(t, err)

	require.Len(t, res.Trades, 1)
	tr := res.Trades[0]
	assert.Equal(t, 80.0, tr.EntryPrice)
	assert.Equal(t, 95.0, tr.ExitPrice)
	assert.Equal(t, sim.ReasonOverbought, tr.Reason)

	assert.Equal(t, 1.0, res.Stats.WinRate)
	assert.False(t, res.Stats.HasRiskReward(), "no losses: undefined risk/reward")

	assert.InDelta(t, 1000*(1+15.0/80.0), res.FinalCapital(), 1e-9)
	assert.InDelta(t, 950.0, res.FinalBuyHold(), 1e-9)

	// Cumulative strategy series compounds only the exit bar's change.
	last := res.StrategyCumulative[len(res.StrategyCumulative)-1]
	assert.InDelta(t, 1+(95.0-85.0)/85.0, last, 1e-9)
	assert.Nil(t, res.OpenAtEnd)
}

func TestRunReportsOpenPositionAtEnd(t *testing.T) {
	r := newRunner(bars(100, 90, 80, 80, 80), 2)

	res, err := r.Run()
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	require.NotNil(t, res.OpenAtEnd)
	assert.Equal(t, 80.0, res.OpenAtEnd.EntryPrice)
}

func TestRunBuyHoldConsistency(t *testing.T) {
	s := bars(100, 104, 97, 103, 99, 108)
	r := newRunner(s, 3)

	res, err := r.Run()
	require.NoError(t, err)

	first := s[0].Close
	last := s[len(s)-1].Close
	assert.Equal(t, 1000*last/first, res.FinalBuyHold())
}

func TestRunJournalsTradesAndCapital(t *testing.T) {
	j := &memJournal{}
	r := newRunner(bars(100, 90, 80, 85, 95), 2)
	r.Journal = j

	res, err := r.Run()
	require.NoError(t, err)

	require.Len(t, j.trades, 1)
	assert.Equal(t, res.Trades[0].ID, j.trades[0].TradeID)
	require.Len(t, j.capital, len(r.Series))
	assert.Equal(t, res.FinalCapital(), j.capital[len(j.capital)-1].Capital)
}

func TestRunRejectsEmptySeries(t *testing.T) {
	r := newRunner(nil, 14)
	_, err := r.Run()
	assert.Error(t, err)
}

func TestRunRejectsUnorderedSeries(t *testing.T) {
	s := bars(100, 101, 102)
	s[1].Time = s[0].Time.Add(-time.Hour)
	r := newRunner(s, 2)

	_, err := r.Run()
	assert.ErrorIs(t, err, market.ErrOutOfOrder)
}

func TestPrintResult(t *testing.T) {
	r := newRunner(bars(100, 90, 80, 85, 95), 2)
	res, err := r.Run()
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintResult(&buf, res)

	out := buf.String()
	assert.Contains(t, out, "Trades:        1")
	assert.Contains(t, out, "Win Rate:      100.00%")
	assert.Contains(t, out, "Risk/Reward:   n/a")
	assert.NotContains(t, out, "Open Position at End of Run")
}

func TestPrintResultOpenPosition(t *testing.T) {
	r := newRunner(bars(100, 90, 80, 80, 80), 2)
	res, err := r.Run()
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintResult(&buf, res)
	assert.Contains(t, buf.String(), "Open Position at End of Run")
}
