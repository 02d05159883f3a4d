package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSCANClustersAndNoise(t *testing.T) {
	X := append(threeBlobs(), []float64{100, 100})
	d := NewDBSCAN(0.5, 3)
	require.NoError(t, d.Fit(X))

	assert.Equal(t, 3, d.NClusters)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2, 2, 2, Noise}, d.Labels)
	assert.Len(t, d.CoreSamples, 9)
}

func TestDBSCANAllNoise(t *testing.T) {
	X := [][]float64{{0}, {10}, {20}}
	d := NewDBSCAN(0.5, 2)
	require.NoError(t, d.Fit(X))
	assert.Equal(t, 0, d.NClusters)
	assert.Equal(t, []int{Noise, Noise, Noise}, d.Assignments())
}

func TestDBSCANIdenticalPoints(t *testing.T) {
	X := [][]float64{{2, 2}, {2, 2}, {2, 2}, {2, 2}, {2, 2}}
	d := NewDBSCAN(0.5, 5)
	require.NoError(t, d.Fit(X))
	assert.Equal(t, 1, d.NClusters)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, d.Labels)
}

func TestDBSCANBorderPoint(t *testing.T) {
	// 0.4 and 0.8 are core; the two ends are border points
	X := [][]float64{{0}, {0.4}, {0.8}, {1.2}}
	d := NewDBSCAN(0.45, 3)
	require.NoError(t, d.Fit(X))
	assert.Equal(t, 1, d.NClusters)
	assert.Equal(t, []int{0, 0, 0, 0}, d.Labels)
	assert.Equal(t, []int{1, 2}, d.CoreSamples)
}

func TestDBSCANInvalid(t *testing.T) {
	assert.ErrorIs(t, NewDBSCAN(0, 5).Fit(threeBlobs()), ErrInvalidParam)
	assert.ErrorIs(t, NewDBSCAN(0.5, 0).Fit(threeBlobs()), ErrInvalidParam)
	assert.ErrorIs(t, NewDBSCAN(0.5, 5).Fit(nil), ErrEmptyInput)
}
