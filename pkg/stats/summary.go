package stats

import "sort"

// FiveNumber is a boxplot summary.
type FiveNumber struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Summarize computes the five-number summary of x ignoring NaN values.
// ok is false when no valid values remain.
func Summarize(x []float64) (FiveNumber, bool) {
	v := DropNaN(x)
	if len(v) == 0 {
		return FiveNumber{}, false
	}
	sort.Float64s(v)
	return FiveNumber{
		Min:    v[0],
		Q1:     percentileSorted(v, 25),
		Median: percentileSorted(v, 50),
		Q3:     percentileSorted(v, 75),
		Max:    v[len(v)-1],
	}, true
}
