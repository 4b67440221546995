package sim

import "time"

// Close reasons recorded on a Trade.
const (
	ReasonStopLoss   = "StopLoss"
	ReasonTakeProfit = "TakeProfit"
	ReasonOverbought = "Overbought"
)

// Trade is a completed open/close cycle. It is immutable once the engine
// appends it: nothing downstream ever rewrites a trade.
type Trade struct {
	ID         string
	EntryTime  time.Time
	EntryPrice float64
	ExitTime   time.Time
	ExitPrice  float64
	Reason     string
}

// PnL is the per-unit profit of the trade (signed).
func (t Trade) PnL() float64 {
	return t.ExitPrice - t.EntryPrice
}

// Return is the fractional profit relative to the entry price.
func (t Trade) Return() float64 {
	return (t.ExitPrice - t.EntryPrice) / t.EntryPrice
}
