package data

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordsRoundTrip(t *testing.T) {
	src := Normalize(read(t, "CIF,Account_Balance,Age,Cluster,region\n1,10.5,30,0,north\n2,20,40,,south\n"))
	recs, err := Records(src)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	zero := 0
	want := ClientRecord{
		ClientID:     "1",
		Age:          30,
		Balance:      10.5,
		ClusterLabel: &zero,
		RawAttributes: map[string]string{
			"CIF": "1", "Account_Balance": "10.5", "Age": "30", "Cluster": "0", "region": "north",
		},
	}
	if diff := cmp.Diff(want, recs[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, recs[1].ClusterLabel)

	back := FromRecords(recs)
	assert.Equal(t, []string{ClientID, Age, Balance, ClusterLabel, "region"}, back.Columns())
	assert.False(t, back.Has(TxCount))
	region, _ := back.Strings("region")
	assert.Equal(t, []string{"north", "south"}, region)
	bal, _ := back.Floats(Balance)
	assert.Equal(t, []float64{10.5, 20}, bal)
}

func TestFromRecordsOnlyEmitsImportedColumns(t *testing.T) {
	src := Normalize(read(t, "CIFs,Account_Balance,Cluster,note\na,100,0,x\nb,200,1,y\n"))
	recs, err := Records(src)
	require.NoError(t, err)

	back := FromRecords(recs)
	want := []string{ClientID, Balance, ClusterLabel, "note"}
	assert.Equal(t, want, src.Columns())
	assert.Equal(t, want, back.Columns())
	assert.Equal(t, src.NumericColumns(), back.NumericColumns())
}

func TestFromRecordsWithoutRawAttributes(t *testing.T) {
	back := FromRecords([]ClientRecord{{ClientID: "a", Age: 30, Balance: 5, TxCount: 2}})
	assert.Equal(t, []string{ClientID, Age, Balance, TxCount, ClusterLabel}, back.Columns())
	lbl, _ := back.Floats(ClusterLabel)
	assert.True(t, math.IsNaN(lbl[0]))
}

func TestRecordsKeepDuplicateHeaders(t *testing.T) {
	recs, err := Records(Normalize(read(t, "client_id,note,note\n1,a,b\n")))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"client_id": "1", "note": "a", "note.1": "b"}, recs[0].RawAttributes)
}

func TestRecordsNeedClientID(t *testing.T) {
	_, err := Records(Normalize(read(t, "balance\n1\n")))
	assert.ErrorIs(t, err, ErrNoClientID)
}

func TestTableSetLength(t *testing.T) {
	tbl := NewTable(2)
	err := tbl.SetNumeric("x", []float64{1})
	assert.ErrorIs(t, err, ErrLength)

	require.NoError(t, tbl.SetNumeric("x", []float64{1, 2}))
	require.NoError(t, tbl.SetNumeric("x", []float64{3, 4}))
	assert.Equal(t, []string{"x"}, tbl.Columns())

	h := tbl.Head(1)
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, map[string]any{"x": 3.0}, h.Row(0))
}
