// Package sim implements the position state machine at the heart of the
// backtest: one bar in, one signal out, trades appended as positions close.
package sim

import (
	"fmt"
	"time"

	"github.com/rustyeddy/meanrev/journal"
	"github.com/rustyeddy/meanrev/market"
	"github.com/rustyeddy/meanrev/pkg/id"
)

// State of the engine. A single engine holds at most one open position.
type State int

const (
	Flat State = iota
	Open
)

func (s State) String() string {
	switch s {
	case Flat:
		return "Flat"
	case Open:
		return "Open"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Signal is emitted once per bar.
type Signal int

const (
	None Signal = iota
	Entry
	Exit
)

func (s Signal) String() string {
	switch s {
	case None:
		return "None"
	case Entry:
		return "Entry"
	case Exit:
		return "Exit"
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

// Config holds the state machine thresholds. All of them are plain
// numbers so the machine stays reusable across instruments.
type Config struct {
	// Oversold is the oscillator level below which a flat engine enters.
	Oversold float64

	// Overbought is the oscillator level above which an open position exits.
	Overbought float64

	// StopSigmas sizes the initial stop: entry * (1 - StopSigmas*sigma).
	StopSigmas float64

	// TakeSigmas sizes the take profit: entry * (1 + TakeSigmas*sigma).
	TakeSigmas float64

	// TrailingStop is the fractional distance of the trailing stop below
	// the highest close seen since entry.
	TrailingStop float64
}

// DefaultConfig returns the standard 30/70 RSI thresholds with a 2-sigma
// stop, 5-sigma take profit and a 2% trailing stop.
func DefaultConfig() Config {
	return Config{
		Oversold:     30,
		Overbought:   70,
		StopSigmas:   2,
		TakeSigmas:   5,
		TrailingStop: 0.02,
	}
}

// Position is the live state of an open trade. It exists only while the
// engine is Open and is owned exclusively by the engine.
type Position struct {
	EntryTime  time.Time
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64

	// Highest close since entry. Never below EntryPrice.
	Highest float64
}

// Engine folds bars into signals and trades. It is not safe for
// concurrent use; run one engine per series.
type Engine struct {
	cfg     Config
	state   State
	pos     Position
	trades  []Trade
	journal journal.Journal
}

// NewEngine returns a flat engine. The journal may be nil, in which case
// closed trades are only kept in memory.
func NewEngine(cfg Config, j journal.Journal) *Engine {
	return &Engine{cfg: cfg, journal: j}
}

// State returns the current machine state.
func (e *Engine) State() State { return e.state }

// Position returns the open position, if any.
func (e *Engine) Position() (Position, bool) {
	if e.state != Open {
		return Position{}, false
	}
	return e.pos, true
}

// Trades returns the closed trades in close order. The returned slice is
// shared with the engine; callers must not modify it.
func (e *Engine) Trades() []Trade { return e.trades }

// Step advances the machine by one bar and returns the signal for it.
//
// osc is the oscillator value for this bar; NaN means "not yet defined"
// and can never fire a condition (NaN comparisons are false). sigma is
// the whole-series volatility estimate used to size protective levels.
//
// Ordering within a bar matters: entry is checked first when flat, and
// the trailing-stop update happens before the exit checks so the exit
// sees the already-ratcheted stop. Entry and trailing update are mutually
// exclusive on the same bar, and an exit bar never re-enters.
func (e *Engine) Step(b market.Bar, osc, sigma float64) (Signal, error) {
	if e.state == Flat {
		if osc < e.cfg.Oversold {
			e.pos = Position{
				EntryTime:  b.Time,
				EntryPrice: b.Close,
				StopLoss:   b.Close * (1 - e.cfg.StopSigmas*sigma),
				TakeProfit: b.Close * (1 + e.cfg.TakeSigmas*sigma),
				Highest:    b.Close,
			}
			e.state = Open
			return Entry, nil
		}
		return None, nil
	}

	// Ratchet the trailing stop. It only ever raises the stop: a
	// recomputed level below the current stop is discarded.
	if b.Close > e.pos.Highest {
		e.pos.Highest = b.Close
		if trail := e.pos.Highest * (1 - e.cfg.TrailingStop); trail > e.pos.StopLoss {
			e.pos.StopLoss = trail
		}
	}

	var reason string
	switch {
	case b.Close <= e.pos.StopLoss:
		reason = ReasonStopLoss
	case b.Close >= e.pos.TakeProfit:
		reason = ReasonTakeProfit
	case osc > e.cfg.Overbought:
		reason = ReasonOverbought
	}
	if reason == "" {
		return None, nil
	}

	t := Trade{
		ID:         id.New(),
		EntryTime:  e.pos.EntryTime,
		EntryPrice: e.pos.EntryPrice,
		ExitTime:   b.Time,
		ExitPrice:  b.Close,
		Reason:     reason,
	}
	e.trades = append(e.trades, t)
	e.pos = Position{}
	e.state = Flat

	if e.journal != nil {
		err := e.journal.RecordTrade(journal.TradeRecord{
			TradeID:    t.ID,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			OpenTime:   t.EntryTime,
			CloseTime:  t.ExitTime,
			PnL:        t.PnL(),
			Reason:     t.Reason,
		})
		if err != nil {
			return Exit, fmt.Errorf("record trade: %w", err)
		}
	}

	return Exit, nil
}

// Run folds the whole series through Step. The oscillator slice must be
// aligned with the series. A position still open after the last bar is
// left open on purpose; callers read it via Position().
func (e *Engine) Run(series market.Series, osc []float64, sigma float64) ([]Signal, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if len(osc) != len(series) {
		return nil, fmt.Errorf("oscillator length %d does not match series length %d", len(osc), len(series))
	}

	signals := make([]Signal, 0, len(series))
	for i, b := range series {
		sig, err := e.Step(b, osc[i], sigma)
		if err != nil {
			return signals, fmt.Errorf("bar %d: %w", i, err)
		}
		signals = append(signals, sig)
	}
	return signals, nil
}
