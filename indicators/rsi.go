package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/meanrev/market"
)

// RSIFunc computes the Relative Strength Index over the full series.
//
// The result has the same length as closes. The first window entries are
// NaN (the value at index i needs the window price changes ending at i).
// Averages are simple rolling means of gains and losses.
//
// The gain/loss ratio is left to float semantics on purpose: a window with
// zero average loss yields +Inf (RSI 100) when gains exist and NaN when the
// window is completely flat. Callers compare against thresholds, and NaN
// compares false, so a flat window can never fire a signal.
func RSIFunc(closes []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}

	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) <= window {
		return out, nil
	}

	for i := window; i < len(closes); i++ {
		var gains, losses float64
		for j := i - window + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				gains += change
			} else {
				losses += -change
			}
		}
		avgGain := gains / float64(window)
		avgLoss := losses / float64(window)

		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}

	return out, nil
}

// RSI is a streaming Relative Strength Index indicator. Its values match
// RSIFunc bar for bar.
type RSI struct {
	window    int
	changes   []float64
	prevClose float64
	hasPrev   bool
}

var _ Indicator = (*RSI)(nil)

// NewRSI creates a new RSI indicator with the given window.
func NewRSI(window int) *RSI {
	return &RSI{
		window:  window,
		changes: make([]float64, 0, window),
	}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.window)
}

func (r *RSI) Warmup() int {
	// Need window+1 bars because a change requires the previous close.
	return r.window + 1
}

func (r *RSI) Reset() {
	r.changes = r.changes[:0]
	r.prevClose = 0
	r.hasPrev = false
}

func (r *RSI) Update(b market.Bar) {
	if !r.hasPrev {
		r.prevClose = b.Close
		r.hasPrev = true
		return
	}

	r.changes = append(r.changes, b.Close-r.prevClose)
	if len(r.changes) > r.window {
		r.changes = r.changes[1:]
	}
	r.prevClose = b.Close
}

func (r *RSI) Ready() bool {
	return len(r.changes) >= r.window
}

func (r *RSI) Value() float64 {
	if !r.Ready() {
		return math.NaN()
	}

	var gains, losses float64
	for _, change := range r.changes {
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}
	avgGain := gains / float64(r.window)
	avgLoss := losses / float64(r.window)

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
