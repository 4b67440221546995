// Package backtest wires the series, indicator, volatility estimate and
// state machine into a single run and summarizes the outcome.
package backtest

import (
	"fmt"

	"github.com/rustyeddy/meanrev/equity"
	"github.com/rustyeddy/meanrev/indicators"
	"github.com/rustyeddy/meanrev/journal"
	"github.com/rustyeddy/meanrev/ledger"
	"github.com/rustyeddy/meanrev/market"
	"github.com/rustyeddy/meanrev/risk"
	"github.com/rustyeddy/meanrev/sim"
)

// Runner drives one backtest over one series. Independent runners are
// fully independent; callers may run them in parallel, one per series.
type Runner struct {
	Series market.Series

	// Window is the oscillator lookback (bars).
	Window int

	// InitialCapital seeds both capital curves.
	InitialCapital float64

	// Sim holds the state machine thresholds.
	Sim sim.Config

	// Journal, when non-nil, receives closed trades during the run and,
	// after it, one capital snapshot per bar (the full step curve, not
	// one point per trade close).
	Journal journal.Journal
}

// Run executes the simulation and returns the full result set. A run
// with zero trades still yields complete statistics and curves.
func (r *Runner) Run() (Result, error) {
	if len(r.Series) == 0 {
		return Result{}, fmt.Errorf("backtest: series is empty")
	}
	if err := r.Series.Validate(); err != nil {
		return Result{}, fmt.Errorf("backtest: %w", err)
	}

	closes := r.Series.Closes()

	osc, err := indicators.RSIFunc(closes, r.Window)
	if err != nil {
		return Result{}, fmt.Errorf("backtest: %w", err)
	}
	sigma := risk.Volatility(closes)

	engine := sim.NewEngine(r.Sim, r.Journal)
	signals, err := engine.Run(r.Series, osc, sigma)
	if err != nil {
		return Result{}, fmt.Errorf("backtest: %w", err)
	}

	trades := engine.Trades()
	res := Result{
		Stats:              ledger.Compute(trades),
		Trades:             trades,
		Signals:            signals,
		Sigma:              sigma,
		InitialCapital:     r.InitialCapital,
		BuyHold:            equity.BuyAndHold(r.Series, r.InitialCapital),
		Strategy:           equity.StrategyCurve(r.Series, trades, r.InitialCapital),
		MarketCumulative:   equity.MarketCumulative(r.Series),
		StrategyCumulative: equity.StrategyCumulative(r.Series, trades),
	}
	res.Start = r.Series[0].Time
	res.End = r.Series[len(r.Series)-1].Time

	// A position still open at the last bar is reported, never silently
	// dropped or force-closed.
	if pos, ok := engine.Position(); ok {
		res.OpenAtEnd = &pos
	}

	if r.Journal != nil {
		for _, p := range res.Strategy {
			err := r.Journal.RecordCapital(journal.CapitalSnapshot{
				Time:    p.Time,
				Capital: p.Capital,
			})
			if err != nil {
				return Result{}, fmt.Errorf("backtest: record capital: %w", err)
			}
		}
	}

	return res, nil
}
