package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrettyR/ClientSphere/pkg/data"
	"github.com/PrettyR/ClientSphere/pkg/stats"
)

func TestBoxplotPerCluster(t *testing.T) {
	b := Boxplot(clients(t))
	assert.Equal(t, data.Age, b.Column)
	require.Len(t, b.Groups, 3)

	assert.Equal(t, intp(0), b.Groups[0].Cluster)
	assert.Equal(t, stats.FiveNumber{Min: 25, Q1: 27.5, Median: 30, Q3: 32.5, Max: 35}, b.Groups[0].FiveNumber)
	assert.Equal(t, stats.FiveNumber{Min: 40, Q1: 41.25, Median: 42.5, Q3: 43.75, Max: 45}, b.Groups[1].FiveNumber)
	assert.Nil(t, b.Groups[2].Cluster)
}

func TestBoxplotBalanceFallbackOmitsEmptyGroups(t *testing.T) {
	b := Boxplot(table(t, "balance,cluster_label,note\n1,0,a\n2,0,b\nNA,1,c\n"))
	assert.Equal(t, data.Balance, b.Column)
	require.Len(t, b.Groups, 2, "balance NA coerces to 0")

	b = Boxplot(table(t, "other,cluster_label\n1,0\nNA,1\n"))
	assert.Equal(t, "", b.Column)
	assert.Empty(t, b.Groups)
}

func TestScatterDropsIncompleteRows(t *testing.T) {
	pts := Scatter(clients(t), 0)
	require.Len(t, pts, 5)
	assert.Equal(t, ScatterPoint{Balance: 100, RiskScore: 0.1, Cluster: 0}, pts[0])

	assert.Len(t, Scatter(clients(t), 2), 2)
	assert.Empty(t, Scatter(table(t, "balance,cluster_label\n1,0\n"), 10))
}
