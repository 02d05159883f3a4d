package analytics

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PrettyR/ClientSphere/pkg/data"
)

// Agg selects the reduction applied per group.
type Agg int

const (
	Sum Agg = iota
	Mean
)

func (a Agg) String() string {
	if a == Mean {
		return "mean"
	}
	return "sum"
}

// ParseAgg accepts "sum" or "mean".
func ParseAgg(s string) (Agg, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum":
		return Sum, nil
	case "mean", "avg":
		return Mean, nil
	}
	return Sum, usagef("aggregate", "unknown aggregate %q", s)
}

// GroupValue is one group's reduced value. Cluster is nil for the
// unassigned group.
type GroupValue struct {
	Cluster *int    `json:"cluster"`
	Value   float64 `json:"value"`
}

// ClusterCount is the size of one group.
type ClusterCount struct {
	Cluster *int `json:"cluster"`
	Count   int  `json:"count"`
}

// GroupAggregate reduces column per cluster label. Missing values are
// skipped; a group with no valid values has a sum of 0 and a mean of 0.
func GroupAggregate(t *data.Table, column string, agg Agg) ([]GroupValue, error) {
	if t.Empty() {
		return []GroupValue{}, nil
	}
	vals, err := numeric(t, column)
	if err != nil {
		return nil, err
	}
	groups := groupByCluster(t)
	out := make([]GroupValue, 0, len(groups))
	for _, g := range groups {
		sum, n := decimalSum(pick(vals, g.rows))
		v := sum
		if agg == Mean && n > 0 {
			v = sum.Div(decimal.NewFromInt(int64(n)))
		}
		out = append(out, GroupValue{Cluster: g.cluster, Value: v.InexactFloat64()})
	}
	return out, nil
}

// ClusterCounts returns the number of rows per cluster label.
func ClusterCounts(t *data.Table) []ClusterCount {
	groups := groupByCluster(t)
	out := make([]ClusterCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, ClusterCount{Cluster: g.cluster, Count: len(g.rows)})
	}
	return out
}

// decimalSum adds the finite values of x exactly and reports how many were
// added.
func decimalSum(x []float64) (decimal.Decimal, int) {
	sum := decimal.Zero
	n := 0
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(v))
		n++
	}
	return sum, n
}
