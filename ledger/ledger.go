// Package ledger accumulates closed trades and derives performance
// statistics from them.
package ledger

import (
	"math"

	"github.com/rustyeddy/meanrev/sim"
)

// Ledger is an append-only list of closed trades. Trades are never
// mutated after being appended.
type Ledger struct {
	trades []sim.Trade
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// FromTrades builds a ledger over an existing trade sequence.
func FromTrades(trades []sim.Trade) *Ledger {
	l := &Ledger{trades: make([]sim.Trade, len(trades))}
	copy(l.trades, trades)
	return l
}

// Append adds a closed trade.
func (l *Ledger) Append(t sim.Trade) {
	l.trades = append(l.trades, t)
}

// Len returns the number of trades.
func (l *Ledger) Len() int { return len(l.trades) }

// Trades returns a copy of the trade sequence in close order.
func (l *Ledger) Trades() []sim.Trade {
	out := make([]sim.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Stats computes the summary over the current ledger contents. It is
// read-only and idempotent: calling it twice on an unchanged ledger
// yields identical results.
func (l *Ledger) Stats() Stats {
	return Compute(l.trades)
}

// Stats summarizes a trade sequence.
type Stats struct {
	Trades int
	Wins   int
	Losses int

	// WinRate is Wins/Trades, 0 when there are no trades.
	WinRate float64

	// AvgWin is the mean pnl of winning trades, 0 when there are none.
	AvgWin float64

	// AvgLoss is the mean pnl of losing trades (signed, typically <= 0),
	// 0 when there are none.
	AvgLoss float64

	// RiskReward is |AvgWin/AvgLoss|. NaN when AvgLoss is 0: with no
	// losing trades the ratio is undefined, not zero.
	RiskReward float64
}

// HasRiskReward reports whether RiskReward is defined.
func (s Stats) HasRiskReward() bool {
	return !math.IsNaN(s.RiskReward)
}

// Compute derives Stats from a trade sequence. A trade wins iff its pnl
// is strictly positive; break-even trades count as losses.
func Compute(trades []sim.Trade) Stats {
	s := Stats{Trades: len(trades)}

	var winSum, lossSum float64
	for _, t := range trades {
		pnl := t.PnL()
		if pnl > 0 {
			s.Wins++
			winSum += pnl
		} else {
			s.Losses++
			lossSum += pnl
		}
	}

	if s.Trades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Trades)
	}
	if s.Wins > 0 {
		s.AvgWin = winSum / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = lossSum / float64(s.Losses)
	}

	if s.AvgLoss != 0 {
		s.RiskReward = math.Abs(s.AvgWin / s.AvgLoss)
	} else {
		s.RiskReward = math.NaN()
	}

	return s
}
