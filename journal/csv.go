package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes trades and capital snapshots to two CSV files.
type CSVJournal struct {
	trades  *csv.Writer
	capital *csv.Writer
	tf, cf  *os.File
}

func NewCSV(tradesPath, capitalPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	cf, err := os.Create(capitalPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	cw := csv.NewWriter(cf)

	fail := func(err error) (*CSVJournal, error) {
		tf.Close()
		cf.Close()
		return nil, err
	}

	if err := tw.Write([]string{"trade_id", "entry_price", "exit_price", "open_time", "close_time", "pnl", "reason"}); err != nil {
		return fail(err)
	}
	if err := cw.Write([]string{"time", "capital"}); err != nil {
		return fail(err)
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return fail(err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fail(err)
	}

	return &CSVJournal{tw, cw, tf, cf}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.OpenTime.Format(time.RFC3339),
		t.CloseTime.Format(time.RFC3339),
		f(t.PnL),
		t.Reason,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordCapital(c CapitalSnapshot) error {
	err := j.capital.Write([]string{
		c.Time.Format(time.RFC3339),
		f(c.Capital),
	})
	if err != nil {
		return err
	}
	j.capital.Flush()
	return j.capital.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.capital.Flush()
	if err := j.capital.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.cf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
