package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeansSeparatesBlobs(t *testing.T) {
	X := threeBlobs()
	km := NewKMeans(3)
	require.NoError(t, km.Fit(X))
	require.Len(t, km.Labels, 9)
	require.Len(t, km.Centroids, 3)

	for g := 0; g < 3; g++ {
		base := km.Labels[g*3]
		assert.Equal(t, base, km.Labels[g*3+1])
		assert.Equal(t, base, km.Labels[g*3+2])
	}
	assert.NotEqual(t, km.Labels[0], km.Labels[3])
	assert.NotEqual(t, km.Labels[0], km.Labels[6])
	assert.NotEqual(t, km.Labels[3], km.Labels[6])
	assert.Less(t, km.Inertia, 0.2)
}

func TestKMeansSingleCluster(t *testing.T) {
	km := NewKMeans(1)
	require.NoError(t, km.Fit(threeBlobs()))
	for _, l := range km.Labels {
		assert.Equal(t, 0, l)
	}
	assert.InDelta(t, 0.0, km.Centroids[0][0], 0.1)
}

func TestKMeansDeterministic(t *testing.T) {
	a := NewKMeans(3, WithNInit(3))
	b := NewKMeans(3, WithNInit(3))
	require.NoError(t, a.Fit(threeBlobs()))
	require.NoError(t, b.Fit(threeBlobs()))
	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Centroids, b.Centroids)
}

func TestKMeansInvalid(t *testing.T) {
	err := NewKMeans(0).Fit(threeBlobs())
	assert.True(t, errors.Is(err, ErrInvalidParam))

	err = NewKMeans(10).Fit(threeBlobs())
	assert.True(t, errors.Is(err, ErrTooFewSamples))

	err = NewKMeans(2).Fit(nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestKMeansIdenticalPoints(t *testing.T) {
	X := [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}
	km := NewKMeans(2)
	require.NoError(t, km.Fit(X))
	assert.Equal(t, 0.0, km.Inertia)
}
