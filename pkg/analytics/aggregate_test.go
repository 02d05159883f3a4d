package analytics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrettyR/ClientSphere/pkg/data"
)

func TestGroupAggregateKeepsUnassigned(t *testing.T) {
	tbl := clients(t)

	sum, err := GroupAggregate(tbl, data.Balance, Sum)
	require.NoError(t, err)
	want := []GroupValue{
		{Cluster: intp(0), Value: 600},
		{Cluster: intp(1), Value: 110000},
		{Cluster: nil, Value: 70000},
	}
	if diff := cmp.Diff(want, sum); diff != "" {
		t.Errorf("sum mismatch (-want +got):\n%s", diff)
	}

	mean, err := GroupAggregate(tbl, data.Balance, Mean)
	require.NoError(t, err)
	require.Len(t, mean, 3)
	assert.Equal(t, 200.0, mean[0].Value)
	assert.Equal(t, 55000.0, mean[1].Value)
	assert.Nil(t, mean[2].Cluster)
}

func TestGroupAggregateDecimalSum(t *testing.T) {
	tbl := table(t, "balance,cluster_label\n0.1,0\n0.2,0\n")
	got, err := GroupAggregate(tbl, data.Balance, Sum)
	require.NoError(t, err)
	assert.Equal(t, 0.3, got[0].Value)
}

func TestGroupAggregateErrors(t *testing.T) {
	_, err := GroupAggregate(clients(t), "nope", Sum)
	assert.True(t, IsUsage(err))

	got, err := GroupAggregate(data.NewTable(0), data.Balance, Mean)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGroupAggregateWithoutLabels(t *testing.T) {
	tbl := table(t, "balance\n1\n2\n")
	got, err := GroupAggregate(tbl, data.Balance, Sum)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Cluster)
	assert.Equal(t, 3.0, got[0].Value)
}

func TestParseAgg(t *testing.T) {
	a, err := ParseAgg("MEAN")
	require.NoError(t, err)
	assert.Equal(t, Mean, a)

	_, err = ParseAgg("median")
	assert.True(t, IsUsage(err))
}

func TestClusterCounts(t *testing.T) {
	got := ClusterCounts(clients(t))
	want := []ClusterCount{{intp(0), 3}, {intp(1), 2}, {nil, 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, ClusterCounts(nil))
}
