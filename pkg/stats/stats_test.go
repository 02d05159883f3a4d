package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	x := []float64{4, 1, 3, 2}
	assert.Equal(t, 1.0, Percentile(x, 0))
	assert.Equal(t, 1.75, Percentile(x, 25))
	assert.Equal(t, 2.5, Median(x))
	assert.Equal(t, 4.0, Percentile(x, 100))
	assert.Equal(t, []float64{4, 1, 3, 2}, x, "input is not reordered")
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestMoments(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.Equal(t, 5.0, Mean(x))
	assert.Equal(t, 4.0, Variance(x))
	assert.Equal(t, 2.0, Std(x))
	lo, hi := MinMax(x)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 9.0, hi)
	assert.Equal(t, []float64{1, 3}, DropNaN([]float64{1, math.NaN(), 3}))
}

func TestSummarize(t *testing.T) {
	fn, ok := Summarize([]float64{5, math.NaN(), 1, 3})
	require.True(t, ok)
	assert.Equal(t, FiveNumber{Min: 1, Q1: 2, Median: 3, Q3: 4, Max: 5}, fn)

	_, ok = Summarize([]float64{math.NaN()})
	assert.False(t, ok)
}

func TestStandardScaler(t *testing.T) {
	s := NewStandardScaler()
	_, err := s.Transform([][]float64{{1}})
	assert.ErrorIs(t, err, ErrNotFitted)

	X := [][]float64{{1, 7}, {3, 7}}
	require.NoError(t, s.Fit(X))
	Z, err := s.Transform(X)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-1, 0}, {1, 0}}, Z, "constant column stays at 0")

	_, err = s.Transform([][]float64{{1}})
	assert.ErrorIs(t, err, ErrColumnCount)
	assert.ErrorIs(t, s.Fit([][]float64{{1, 2}, {1}}), ErrInconsistentX)
}

func TestCorrelationMatrix(t *testing.T) {
	m := CorrelationMatrix([][]float64{
		{1, 2, 3, math.NaN()},
		{2, 4, 6, 100},
		{1, 1, 1, 1},
	})
	assert.InDelta(t, 1.0, m.At(0, 1), 1e-12, "pairs skip missing rows")
	assert.Equal(t, 0.0, m.At(0, 2))
	assert.Equal(t, 0.0, m.At(2, 2))
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Nil(t, CorrelationMatrix(nil))
}

func TestOneWayANOVA(t *testing.T) {
	f, p, ok := OneWayANOVA([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.True(t, ok)
	// means 2 and 5, ssb 13.5, ssw 4 on (1, 4) df
	assert.InDelta(t, 13.5, f, 1e-9)
	assert.InDelta(t, 0.0213, p, 1e-3)

	_, _, ok = OneWayANOVA([][]float64{{1, 2}, {3}})
	assert.False(t, ok)

	_, _, ok = OneWayANOVA([][]float64{{1, 1}, {1, 1}})
	assert.False(t, ok, "zero within and between variance")
}
