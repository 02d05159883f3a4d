package dataprep

import (
	"errors"
	"math"

	"github.com/PrettyR/ClientSphere/pkg/stats"
)

var ErrImputerNotFitted = errors.New("dataprep: imputer is not fitted")

// MedianImputer replaces NaN values with the column median learned by Fit.
// A column with no valid values imputes to 0.
type MedianImputer struct {
	Medians []float64
	fit     bool
}

func NewMedianImputer() *MedianImputer { return &MedianImputer{} }

func (m *MedianImputer) Fit(X [][]float64) error {
	m.fit = true
	if len(X) == 0 {
		m.Medians = nil
		return nil
	}
	c := len(X[0])
	m.Medians = make([]float64, c)
	col := make([]float64, 0, len(X))
	for j := 0; j < c; j++ {
		col = col[:0]
		for _, row := range X {
			if len(row) != c {
				return stats.ErrInconsistentX
			}
			if !math.IsNaN(row[j]) {
				col = append(col, row[j])
			}
		}
		if len(col) > 0 {
			m.Medians[j] = stats.Median(col)
		}
	}
	return nil
}

func (m *MedianImputer) Transform(X [][]float64) ([][]float64, error) {
	if !m.fit {
		return nil, ErrImputerNotFitted
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(m.Medians) {
			return nil, stats.ErrColumnCount
		}
		r := make([]float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				v = m.Medians[j]
			}
			r[j] = v
		}
		out[i] = r
	}
	return out, nil
}
