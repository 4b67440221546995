package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/meanrev/market"
)

func TestRSIFuncRejectsBadWindow(t *testing.T) {
	_, err := RSIFunc([]float64{100, 101}, 0)
	assert.Error(t, err)
}

func TestRSIFuncWarmup(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 104, 105}
	out, err := RSIFunc(closes, 3)
	require.NoError(t, err)
	require.Len(t, out, len(closes))

	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d should be undefined", i)
	}
	for i := 3; i < len(out); i++ {
		assert.False(t, math.IsNaN(out[i]), "index %d should be defined", i)
	}
}

func TestRSIFuncShortSeriesAllUndefined(t *testing.T) {
	out, err := RSIFunc([]float64{100, 101, 102}, 14)
	require.NoError(t, err)
	for i, v := range out {
		assert.True(t, math.IsNaN(v), "index %d", i)
	}
}

func TestRSIFuncKnownValues(t *testing.T) {
	// Changes over the window at index 3: +2, -1, +2.
	// avgGain = 4/3, avgLoss = 1/3, rs = 4 => RSI = 80.
	closes := []float64{100, 102, 101, 103}
	out, err := RSIFunc(closes, 3)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, out[3], 1e-9)
}

func TestRSIFuncExtremes(t *testing.T) {
	// Only gains: avgLoss = 0, the division runs to +Inf and RSI is 100.
	up, err := RSIFunc([]float64{100, 101, 102, 103}, 3)
	require.NoError(t, err)
	assert.Equal(t, 100.0, up[3])

	// Only losses: rs = 0, RSI = 0.
	down, err := RSIFunc([]float64{103, 102, 101, 100}, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, down[3])
}

func TestRSIFuncFlatWindowIsUndefined(t *testing.T) {
	// A flat window divides 0 by 0; the NaN propagates instead of
	// crashing, and threshold comparisons treat it as false.
	out, err := RSIFunc([]float64{100, 100, 100, 100, 100}, 3)
	require.NoError(t, err)
	for i := 3; i < len(out); i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d", i)
		assert.False(t, out[i] < 30)
		assert.False(t, out[i] > 70)
	}
}

func TestStreamingRSIMatchesBatch(t *testing.T) {
	closes := []float64{100, 102, 101, 103, 99, 98, 104, 103, 107, 105}
	const window = 4

	batch, err := RSIFunc(closes, window)
	require.NoError(t, err)

	rsi := NewRSI(window)
	assert.Equal(t, "RSI(4)", rsi.Name())
	assert.Equal(t, window+1, rsi.Warmup())

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		rsi.Update(market.Bar{Time: t0.Add(time.Duration(i) * time.Hour), Close: c})

		if i < window {
			assert.False(t, rsi.Ready(), "index %d", i)
			assert.True(t, math.IsNaN(rsi.Value()))
			continue
		}
		require.True(t, rsi.Ready(), "index %d", i)
		assert.InDelta(t, batch[i], rsi.Value(), 1e-9, "index %d", i)
	}
}

func TestStreamingRSIReset(t *testing.T) {
	rsi := NewRSI(3)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range []float64{100, 101, 102, 103} {
		rsi.Update(market.Bar{Time: t0.Add(time.Duration(i) * time.Hour), Close: c})
	}
	require.True(t, rsi.Ready())

	rsi.Reset()
	assert.False(t, rsi.Ready())
	assert.True(t, math.IsNaN(rsi.Value()))
}
