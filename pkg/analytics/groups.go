package analytics

import (
	"math"
	"sort"

	"github.com/PrettyR/ClientSphere/pkg/data"
)

// group is the set of rows sharing one cluster label. A nil cluster is the
// unassigned segment.
type group struct {
	cluster *int
	rows    []int
}

// labelAt returns the cluster label of row i, or nil when it is unassigned.
func labelAt(col *data.Column, i int) *int {
	if col == nil || col.Kind != data.Numeric {
		return nil
	}
	v := col.Nums[i]
	if math.IsNaN(v) {
		return nil
	}
	l := int(v)
	return &l
}

// Labels returns the cluster label of every row. A table without a
// cluster_label column has every row unassigned.
func Labels(t *data.Table) []*int {
	if t.Empty() {
		return nil
	}
	col, _ := t.Column(data.ClusterLabel)
	out := make([]*int, t.Len())
	for i := range out {
		out[i] = labelAt(col, i)
	}
	return out
}

// groupByCluster splits the rows of t by cluster label, ascending, with the
// unassigned group last.
func groupByCluster(t *data.Table) []group {
	if t.Empty() {
		return nil
	}
	idx := map[int]int{}
	var groups []group
	var unassigned []int
	for i, l := range Labels(t) {
		if l == nil {
			unassigned = append(unassigned, i)
			continue
		}
		k, ok := idx[*l]
		if !ok {
			k = len(groups)
			idx[*l] = k
			groups = append(groups, group{cluster: l})
		}
		groups[k].rows = append(groups[k].rows, i)
	}
	sort.Slice(groups, func(a, b int) bool { return *groups[a].cluster < *groups[b].cluster })
	if len(unassigned) > 0 {
		groups = append(groups, group{rows: unassigned})
	}
	return groups
}

// numeric returns the values of a numeric column or a UsageError naming it.
func numeric(t *data.Table, name string) ([]float64, error) {
	if !t.IsNumeric(name) {
		return nil, usagef("column", "%q is not a numeric column", name)
	}
	v, _ := t.Floats(name)
	return v, nil
}

func pick(vals []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = vals[r]
	}
	return out
}

func firstNumeric(t *data.Table, names ...string) string {
	for _, n := range names {
		if t.IsNumeric(n) {
			return n
		}
	}
	return ""
}

func ptr(v float64) *float64 { return &v }
