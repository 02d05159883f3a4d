package dataprep

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrettyR/ClientSphere/pkg/data"
)

func TestMedianImputer(t *testing.T) {
	nan := math.NaN()
	m := NewMedianImputer()
	_, err := m.Transform([][]float64{{1}})
	assert.ErrorIs(t, err, ErrImputerNotFitted)

	X := [][]float64{{1, nan}, {nan, nan}, {5, nan}, {4, nan}}
	require.NoError(t, m.Fit(X))
	assert.Equal(t, []float64{4, 0}, m.Medians)

	out, err := m.Transform(X)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {4, 0}, {5, 0}, {4, 0}}, out)
	assert.True(t, math.IsNaN(X[1][0]), "input is not modified")
}

func TestPrepare(t *testing.T) {
	raw, err := data.ReadCSV(strings.NewReader("client_id,age,balance,cluster_label,note,score\n1,20,100,0,a,\n2,40,300,1,b,5\n3,,200,1,c,5\n"))
	require.NoError(t, err)
	tbl := data.Normalize(raw)

	X, names, err := Prepare(tbl, []string{"balance"})
	require.NoError(t, err)
	assert.Equal(t, []string{data.Age, "score"}, names)
	require.Len(t, X, 3)

	// age: NaN coerced to 0 by the normalizer, so {20, 40, 0}
	mean := 20.0
	std := math.Sqrt((0 + 400 + 400) / 3.0)
	assert.InDelta(t, (20-mean)/std, X[0][0], 1e-12)
	assert.InDelta(t, (40-mean)/std, X[1][0], 1e-12)
	// score: missing imputes to the median 5, leaving a constant column
	assert.Equal(t, 0.0, X[0][1])
	assert.Equal(t, 0.0, X[2][1])
}

func TestPrepareDeterministic(t *testing.T) {
	raw, err := data.ReadCSV(strings.NewReader("a,b\n1,2\n3,1\n2,2\n"))
	require.NoError(t, err)
	x1, _, err := Prepare(raw, nil)
	require.NoError(t, err)
	x2, _, err := Prepare(raw, nil)
	require.NoError(t, err)
	assert.Equal(t, x1, x2)
}

func TestPrepareNoFeatures(t *testing.T) {
	raw, err := data.ReadCSV(strings.NewReader("client_id,name\n1,x\n"))
	require.NoError(t, err)
	X, names, err := Prepare(data.Normalize(raw), nil)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.Len(t, X, 1)
}
