package charts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrettyR/ClientSphere/pkg/analytics"
	"github.com/PrettyR/ClientSphere/pkg/data"
)

func intp(v int) *int { return &v }

func TestRenderWritesEveryChart(t *testing.T) {
	payload := analytics.ChartsPayload{
		BalanceByCluster: []analytics.GroupValue{{Cluster: intp(0), Value: 10}, {Cluster: nil, Value: 5}},
		Segments:         []analytics.ClusterCount{{Cluster: intp(0), Count: 2}, {Cluster: nil, Count: 1}},
		Histogram: analytics.HistogramResult{
			Column:  data.TxCount,
			Buckets: []analytics.Bucket{{Label: "0", Count: 1}, {Label: "1", Count: 2}},
		},
		Scatter: []analytics.ScatterPoint{
			{Balance: 1, RiskScore: 0.1, Cluster: 0},
			{Balance: 2, RiskScore: 0.9, Cluster: 1},
		},
	}
	dir := filepath.Join(t.TempDir(), "charts")
	paths, err := NewRenderer(dir, 4).Render(payload)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	for _, name := range []string{BalanceFile, SegmentFile, TxFile, ScatterFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}
}

func TestRenderSkipsEmptyDatasets(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewRenderer(dir, 0).Render(analytics.ChartsPayload{
		Segments: []analytics.ClusterCount{{Cluster: intp(1), Count: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, SegmentFile)}, paths)
}
