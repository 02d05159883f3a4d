package analytics

import (
	"math"

	"github.com/PrettyR/ClientSphere/pkg/data"
	"github.com/PrettyR/ClientSphere/pkg/stats"
)

// DefaultScatterLimit caps the points returned by Scatter.
const DefaultScatterLimit = 1000

// BoxGroup is one cluster's five-number summary.
type BoxGroup struct {
	Cluster *int `json:"cluster"`
	stats.FiveNumber
}

// BoxplotResult summarizes one column per cluster.
type BoxplotResult struct {
	Column string     `json:"column"`
	Groups []BoxGroup `json:"groups"`
}

// Boxplot summarizes age per cluster, or balance when age is absent.
// Clusters with no valid values are omitted.
func Boxplot(t *data.Table) BoxplotResult {
	if t.Empty() {
		return BoxplotResult{Groups: []BoxGroup{}}
	}
	col := firstNumeric(t, data.Age, data.Balance)
	res := BoxplotResult{Column: col, Groups: []BoxGroup{}}
	if col == "" {
		return res
	}
	vals, _ := t.Floats(col)
	for _, g := range groupByCluster(t) {
		fn, ok := stats.Summarize(pick(vals, g.rows))
		if !ok {
			continue
		}
		res.Groups = append(res.Groups, BoxGroup{Cluster: g.cluster, FiveNumber: fn})
	}
	return res
}

// ScatterPoint is one client in the balance/risk plane.
type ScatterPoint struct {
	Balance   float64 `json:"balance"`
	RiskScore float64 `json:"risk_score"`
	Cluster   int     `json:"cluster"`
}

// Scatter returns up to limit clients with a balance, a risk score and a
// cluster label, in table order. limit <= 0 means DefaultScatterLimit.
func Scatter(t *data.Table, limit int) []ScatterPoint {
	if limit <= 0 {
		limit = DefaultScatterLimit
	}
	out := []ScatterPoint{}
	if t.Empty() || !t.IsNumeric(data.Balance) || !t.IsNumeric(data.RiskScore) {
		return out
	}
	bal, _ := t.Floats(data.Balance)
	risk, _ := t.Floats(data.RiskScore)
	for i, l := range Labels(t) {
		if len(out) == limit {
			break
		}
		if l == nil || math.IsNaN(bal[i]) || math.IsNaN(risk[i]) {
			continue
		}
		out = append(out, ScatterPoint{Balance: bal[i], RiskScore: risk[i], Cluster: *l})
	}
	return out
}
