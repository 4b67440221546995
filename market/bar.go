// Package market holds the price series model shared by the simulator.
package market

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutOfOrder is returned when a series has non-monotonic timestamps.
// A run is never started on an unordered series.
var ErrOutOfOrder = errors.New("series timestamps out of order")

// Bar is a single closing price observation.
type Bar struct {
	Time  time.Time
	Close float64
}

// Series is an ordered sequence of bars, oldest first.
type Series []Bar

// Validate checks that timestamps are strictly increasing and closes are
// positive. It reports the offending bar index in the error.
func (s Series) Validate() error {
	for i, b := range s {
		if b.Close <= 0 {
			return fmt.Errorf("bar %d: close must be positive, got %v", i, b.Close)
		}
		if i > 0 && !b.Time.After(s[i-1].Time) {
			return fmt.Errorf("bar %d (%s): %w", i, b.Time.Format(time.RFC3339), ErrOutOfOrder)
		}
	}
	return nil
}

// Closes returns the close column, in bar order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// First returns the first bar. Second return is false for an empty series.
func (s Series) First() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[0], true
}

// Last returns the last bar. Second return is false for an empty series.
func (s Series) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}
