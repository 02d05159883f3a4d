package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSilhouetteWellSeparated(t *testing.T) {
	labels := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	s, ok := Silhouette(threeBlobs(), labels)
	assert.True(t, ok)
	assert.Greater(t, s, 0.9)
	assert.LessOrEqual(t, s, 1.0)
}

func TestSilhouetteUndefined(t *testing.T) {
	X := threeBlobs()
	_, ok := Silhouette(X, make([]int, len(X)))
	assert.False(t, ok, "single label")

	labels := make([]int, len(X))
	for i := range labels {
		labels[i] = i
	}
	_, ok = Silhouette(X, labels)
	assert.False(t, ok, "one label per row")

	_, ok = Silhouette(nil, nil)
	assert.False(t, ok)
}

func TestSilhouetteNoiseIsALabel(t *testing.T) {
	X := [][]float64{{0}, {0.1}, {5}, {5.1}}
	s, ok := Silhouette(X, []int{0, 0, Noise, Noise})
	assert.True(t, ok)
	assert.Greater(t, s, 0.9)
}

func TestSilhouetteSingletonScoresZero(t *testing.T) {
	X := [][]float64{{0}, {1}, {10}}
	s, ok := Silhouette(X, []int{0, 0, 1})
	assert.True(t, ok)
	// rows 0 and 1: a=1; b is 10 and 9
	want := ((10.0-1)/10 + (9.0-1)/9 + 0) / 3
	assert.InDelta(t, want, s, 1e-12)
}

func TestAccuracyInt(t *testing.T) {
	assert.Equal(t, 0.75, AccuracyInt([]int{1, 2, 3, 4}, []int{1, 2, 3, 0}))
	assert.Equal(t, 0.0, AccuracyInt(nil, nil))
}
