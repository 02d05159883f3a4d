package stats

import (
	"errors"
	"math"
)

var (
	ErrNotFitted     = errors.New("stats: scaler is not fitted")
	ErrColumnCount   = errors.New("stats: column count does not match fitted data")
	ErrInconsistentX = errors.New("stats: inconsistent number of columns in X rows")
)

// StandardScaler standardizes each column to zero mean and unit variance.
// Columns with zero variance are centered only, which leaves them at 0.
type StandardScaler struct {
	Mean []float64
	Std  []float64
	fit  bool
}

func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns per-column mean and population standard deviation.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		s.Mean, s.Std, s.fit = nil, nil, true
		return nil
	}
	r, c := len(X), len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			if len(X[i]) != c {
				return ErrInconsistentX
			}
			col[i] = X[i][j]
		}
		s.Mean[j] = Mean(col)
		s.Std[j] = Std(col)
		if s.Std[j] == 0 || math.IsNaN(s.Std[j]) {
			s.Std[j] = 1
		}
	}
	s.fit = true
	return nil
}

// Transform returns a standardized copy of X.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.fit {
		return nil, ErrNotFitted
	}
	Y := make([][]float64, len(X))
	for i, x := range X {
		if len(x) != len(s.Mean) {
			return nil, ErrColumnCount
		}
		row := make([]float64, len(x))
		for j, v := range x {
			row[j] = (v - s.Mean[j]) / s.Std[j]
		}
		Y[i] = row
	}
	return Y, nil
}
