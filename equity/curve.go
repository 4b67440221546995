// Package equity builds capital and cumulative-return trajectories from
// a price series and the trades closed against it.
package equity

import (
	"time"

	"github.com/rustyeddy/meanrev/market"
	"github.com/rustyeddy/meanrev/sim"
)

// Point is one sample on a capital curve.
type Point struct {
	Time    time.Time
	Capital float64
}

// BuyAndHold is the passive baseline: capital(t) = initial * close(t)/close(0).
func BuyAndHold(series market.Series, initial float64) []Point {
	if len(series) == 0 {
		return nil
	}

	first := series[0].Close
	out := make([]Point, 0, len(series))
	for _, b := range series {
		out = append(out, Point{Time: b.Time, Capital: initial * b.Close / first})
	}
	return out
}

// StrategyCurve is the realized capital of the strategy: a step function
// that stays flat between trade closes and compounds the full trade
// return at each exit bar. There is no mark-to-market while a position
// is open.
func StrategyCurve(series market.Series, trades []sim.Trade, initial float64) []Point {
	if len(series) == 0 {
		return nil
	}

	exits := exitsByTime(trades)
	capital := initial

	out := make([]Point, 0, len(series))
	for _, b := range series {
		if t, ok := exits[b.Time.UnixNano()]; ok {
			capital *= 1 + t.Return()
		}
		out = append(out, Point{Time: b.Time, Capital: capital})
	}
	return out
}

// MarketCumulative compounds bar-over-bar price changes into growth
// factors, starting at 1. The last entry equals close(last)/close(first)
// up to float rounding.
func MarketCumulative(series market.Series) []float64 {
	if len(series) == 0 {
		return nil
	}

	out := make([]float64, len(series))
	out[0] = 1
	for i := 1; i < len(series); i++ {
		r := (series[i].Close - series[i-1].Close) / series[i-1].Close
		out[i] = out[i-1] * (1 + r)
	}
	return out
}

// StrategyCumulative compounds the strategy's per-bar returns into growth
// factors, starting at 1. The per-bar return is zero except on bars where
// a trade closes, where it is that bar's single-period price change.
//
// Note this mirrors only the exit bar's return, not the full holding
// period, so this series is not consistent with StrategyCurve. The two
// are kept as they are; see DESIGN.md.
func StrategyCumulative(series market.Series, trades []sim.Trade) []float64 {
	if len(series) == 0 {
		return nil
	}

	exits := exitsByTime(trades)

	out := make([]float64, len(series))
	out[0] = 1
	for i := 1; i < len(series); i++ {
		r := 0.0
		if _, ok := exits[series[i].Time.UnixNano()]; ok {
			r = (series[i].Close - series[i-1].Close) / series[i-1].Close
		}
		out[i] = out[i-1] * (1 + r)
	}
	return out
}

// exitsByTime indexes trades by exit timestamp. A single-position engine
// closes at most one trade per bar, so the key is unique.
func exitsByTime(trades []sim.Trade) map[int64]sim.Trade {
	out := make(map[int64]sim.Trade, len(trades))
	for _, t := range trades {
		out[t.ExitTime.UnixNano()] = t
	}
	return out
}
