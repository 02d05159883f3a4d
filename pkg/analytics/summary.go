package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/PrettyR/ClientSphere/pkg/data"
	"github.com/PrettyR/ClientSphere/pkg/stats"
)

// OverviewResult is the headline view of the client base.
type OverviewResult struct {
	TotalClients     int            `json:"total_clients"`
	SegmentsCount    int            `json:"segments_count"`
	AvgBalance       float64        `json:"avg_balance"`
	TotalAssets      float64        `json:"total_assets"`
	SegmentBreakdown []ClusterCount `json:"segment_breakdown"`
}

// Overview counts clients and segments and totals their balances. The
// unassigned group appears in the breakdown but is not a segment.
func Overview(t *data.Table) OverviewResult {
	res := OverviewResult{SegmentBreakdown: ClusterCounts(t)}
	if t.Empty() {
		return res
	}
	res.TotalClients = t.Len()
	for _, c := range res.SegmentBreakdown {
		if c.Cluster != nil {
			res.SegmentsCount++
		}
	}
	if bal, ok := t.Floats(data.Balance); ok {
		sum, n := decimalSum(bal)
		res.TotalAssets = sum.InexactFloat64()
		if n > 0 {
			res.AvgBalance = sum.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
		}
	}
	return res
}

// segmentColumns are the per-segment means reported by SegmentDistribution.
var segmentColumns = []string{data.Balance, data.ProductsOwned, data.RiskScore}

// SegmentStats describes one segment.
type SegmentStats struct {
	Cluster *int               `json:"cluster"`
	Count   int                `json:"count"`
	Means   map[string]float64 `json:"means"`
}

// SegmentDistribution reports the size of every segment and the mean
// balance, products owned and risk score of its members, for the columns
// that are present.
func SegmentDistribution(t *data.Table) []SegmentStats {
	groups := groupByCluster(t)
	out := make([]SegmentStats, 0, len(groups))
	if len(groups) == 0 {
		return out
	}
	cols := map[string][]float64{}
	for _, name := range segmentColumns {
		if v, ok := t.Floats(name); ok {
			cols[name] = v
		}
	}
	for _, g := range groups {
		s := SegmentStats{Cluster: g.cluster, Count: len(g.rows), Means: map[string]float64{}}
		for name, vals := range cols {
			if v := stats.DropNaN(pick(vals, g.rows)); len(v) > 0 {
				s.Means[name] = stats.Mean(v)
			}
		}
		out = append(out, s)
	}
	return out
}

// ChartsPayload bundles every chart dataset of the dashboard.
type ChartsPayload struct {
	BalanceByCluster []GroupValue    `json:"balance_by_cluster"`
	Segments         []ClusterCount  `json:"segments"`
	Histogram        HistogramResult `json:"histogram"`
	Boxplot          BoxplotResult   `json:"boxplot"`
	Scatter          []ScatterPoint  `json:"scatter"`
}

// ChartsSummary computes every chart dataset. An empty table yields empty
// lists throughout.
func ChartsSummary(t *data.Table) ChartsPayload {
	p := ChartsPayload{
		BalanceByCluster: []GroupValue{},
		Segments:         ClusterCounts(t),
		Histogram:        Histogram(t),
		Boxplot:          Boxplot(t),
		Scatter:          Scatter(t, DefaultScatterLimit),
	}
	if !t.Empty() && t.IsNumeric(data.Balance) {
		p.BalanceByCluster, _ = GroupAggregate(t, data.Balance, Sum)
	}
	return p
}
