package analytics

import (
	"math"

	"github.com/PrettyR/ClientSphere/pkg/data"
)

// breakpoints describes a fixed bucketing. Uppers are the inclusive upper
// edges of every bucket but the last, which is open.
type breakpoints struct {
	uppers []float64
	labels []string
}

var (
	countBreaks = breakpoints{
		uppers: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		labels: []string{"0", "1", "2", "3-5", "6-10", "11-20", "21-50", "51-100", ">100"},
	}
	balanceBreaks = breakpoints{
		uppers: []float64{1000, 5000, 10000, 25000, 50000, 100000},
		labels: []string{"0-1k", "1k-5k", "5k-10k", "10k-25k", "25k-50k", "50k-100k", ">100k"},
	}
)

// histogramSources is the order in which a histogram column is chosen.
var histogramSources = []string{data.TxCount, data.ProductsOwned, "transactions", data.Balance}

// Bucket is one histogram bin covering (Lower, Upper]. The first bin also
// includes Lower.
type Bucket struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// HistogramResult is the distribution of one column.
type HistogramResult struct {
	Column  string   `json:"column"`
	Buckets []Bucket `json:"buckets"`
}

// Histogram buckets the first available column of tx_count,
// products_owned, transactions and balance. Missing values count as 0. The
// first bucket reaches down to the observed minimum and the last up to the
// observed maximum.
func Histogram(t *data.Table) HistogramResult {
	if t.Empty() {
		return HistogramResult{Buckets: []Bucket{}}
	}
	col := firstNumeric(t, histogramSources...)
	if col == "" {
		return HistogramResult{Column: col, Buckets: []Bucket{}}
	}
	bp := countBreaks
	if col == data.Balance {
		bp = balanceBreaks
	}
	vals, _ := t.Floats(col)
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = 0
		}
	}
	return HistogramResult{Column: col, Buckets: bucketize(vals, bp)}
}

func bucketize(vals []float64, bp breakpoints) []Bucket {
	lo, hi := 0.0, bp.uppers[len(bp.uppers)-1]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	n := len(bp.uppers) + 1
	out := make([]Bucket, n)
	for i := range out {
		out[i].Label = bp.labels[i]
		if i == 0 {
			out[i].Lower = lo
		} else {
			out[i].Lower = bp.uppers[i-1]
		}
		if i < len(bp.uppers) {
			out[i].Upper = bp.uppers[i]
		} else {
			out[i].Upper = hi
		}
	}
	for _, v := range vals {
		out[bucketOf(v, bp.uppers)].Count++
	}
	return out
}

func bucketOf(v float64, uppers []float64) int {
	for i, u := range uppers {
		if v <= u {
			return i
		}
	}
	return len(uppers)
}
