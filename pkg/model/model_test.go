package model

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// threeBlobs returns nine points in three well separated groups of three.
func threeBlobs() [][]float64 {
	return [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
		{-10, 10}, {-10.1, 10}, {-10, 10.1},
	}
}
