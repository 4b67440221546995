package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(closes ...float64) Series {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(Series, 0, len(closes))
	for i, c := range closes {
		s = append(s, Bar{Time: t0.Add(time.Duration(i) * time.Hour), Close: c})
	}
	return s
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, series(100, 101, 99).Validate())
	assert.NoError(t, Series(nil).Validate())
}

func TestValidateOutOfOrder(t *testing.T) {
	s := series(100, 101, 102)
	s[2].Time = s[0].Time.Add(-time.Hour)

	err := s.Validate()
	assert.ErrorIs(t, err, ErrOutOfOrder)
}

func TestValidateDuplicateTimestamp(t *testing.T) {
	s := series(100, 101)
	s[1].Time = s[0].Time

	assert.ErrorIs(t, s.Validate(), ErrOutOfOrder)
}

func TestValidateNonPositiveClose(t *testing.T) {
	s := series(100, 101)
	s[1].Close = 0

	assert.Error(t, s.Validate())
}

func TestCloses(t *testing.T) {
	assert.Equal(t, []float64{100, 101, 99}, series(100, 101, 99).Closes())
}

func TestFirstLast(t *testing.T) {
	s := series(100, 105)

	first, ok := s.First()
	require.True(t, ok)
	assert.Equal(t, 100.0, first.Close)

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 105.0, last.Close)

	_, ok = Series(nil).First()
	assert.False(t, ok)
	_, ok = Series(nil).Last()
	assert.False(t, ok)
}
