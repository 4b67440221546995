package backtest

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/meanrev/equity"
	"github.com/rustyeddy/meanrev/ledger"
	"github.com/rustyeddy/meanrev/sim"
)

// Result is the complete output of one backtest run.
type Result struct {
	Stats   ledger.Stats
	Trades  []sim.Trade
	Signals []sim.Signal

	// OpenAtEnd is the position left open after the last bar, if any.
	OpenAtEnd *sim.Position

	Sigma          float64
	InitialCapital float64
	Start, End     time.Time

	BuyHold  []equity.Point
	Strategy []equity.Point

	// Cumulative growth factors per bar, starting at 1.
	MarketCumulative   []float64
	StrategyCumulative []float64
}

// FinalCapital returns the last strategy capital value.
func (r Result) FinalCapital() float64 {
	if len(r.Strategy) == 0 {
		return r.InitialCapital
	}
	return r.Strategy[len(r.Strategy)-1].Capital
}

// FinalBuyHold returns the last buy-and-hold capital value.
func (r Result) FinalBuyHold() float64 {
	if len(r.BuyHold) == 0 {
		return r.InitialCapital
	}
	return r.BuyHold[len(r.BuyHold)-1].Capital
}

// PrintResult writes a console summary of a run.
func PrintResult(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Start:         %s\n", r.Start.Format(time.RFC3339))
	fmt.Fprintf(w, "End:           %s\n", r.End.Format(time.RFC3339))
	fmt.Fprintf(w, "Volatility:    %.6f\n", r.Sigma)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", r.Stats.Trades)
	fmt.Fprintf(w, "Wins:          %d\n", r.Stats.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", r.Stats.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.Stats.WinRate*100)
	fmt.Fprintf(w, "Avg Win:       %.4f\n", r.Stats.AvgWin)
	fmt.Fprintf(w, "Avg Loss:      %.4f\n", r.Stats.AvgLoss)
	if r.Stats.HasRiskReward() {
		fmt.Fprintf(w, "Risk/Reward:   %.2f\n", r.Stats.RiskReward)
	} else {
		fmt.Fprintf(w, "Risk/Reward:   n/a\n")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capital")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial:       %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Strategy:      %.2f\n", r.FinalCapital())
	fmt.Fprintf(w, "Buy & Hold:    %.2f\n", r.FinalBuyHold())

	if r.OpenAtEnd != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Open Position at End of Run")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "Entry:         %.4f @ %s\n", r.OpenAtEnd.EntryPrice, r.OpenAtEnd.EntryTime.Format(time.RFC3339))
		fmt.Fprintf(w, "Stop Loss:     %.4f\n", r.OpenAtEnd.StopLoss)
		fmt.Fprintf(w, "Take Profit:   %.4f\n", r.OpenAtEnd.TakeProfit)
		fmt.Fprintf(w, "Highest:       %.4f\n", r.OpenAtEnd.Highest)
	}

	fmt.Fprintln(w)
}
