// Package risk estimates the dispersion used to size protective levels.
package risk

import "math"

// Returns computes period-over-period fractional price changes.
// The result has len(closes)-1 entries (empty for fewer than 2 closes).
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out = append(out, (closes[i]-closes[i-1])/closes[i-1])
	}
	return out
}

// Volatility is the population standard deviation of period returns over
// the whole series. Stop and take-profit distances are sized as multiples
// of this value. Returns 0 when the series has fewer than 2 closes.
func Volatility(closes []float64) float64 {
	rets := Returns(closes)
	if len(rets) == 0 {
		return 0
	}

	var mean float64
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	var variance float64
	for _, r := range rets {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rets))

	return math.Sqrt(variance)
}
