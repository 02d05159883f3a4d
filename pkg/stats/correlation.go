package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix computes pairwise Pearson correlation between columns.
// Each pair uses the rows where both values are present. Undefined
// coefficients, such as those involving a constant column, are 0.
func CorrelationMatrix(cols [][]float64) *mat.SymDense {
	p := len(cols)
	if p == 0 {
		return nil
	}
	m := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		diag := 0.0
		if v := DropNaN(cols[i]); len(v) > 1 && Variance(v) > 0 {
			diag = 1
		}
		m.SetSym(i, i, diag)
		for j := i + 1; j < p; j++ {
			m.SetSym(i, j, pairCorrelation(cols[i], cols[j]))
		}
	}
	return m
}

func pairCorrelation(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for k := range x {
		if k >= len(y) || math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			continue
		}
		xs = append(xs, x[k])
		ys = append(ys, y[k])
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}
