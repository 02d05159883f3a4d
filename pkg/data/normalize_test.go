package data

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, s string) *Table {
	t.Helper()
	tbl, err := ReadCSV(strings.NewReader(s))
	require.NoError(t, err)
	return tbl
}

func TestNormalizeAliases(t *testing.T) {
	raw := read(t, "CIFs,Age,Account_Balance,Transaction_Frequency,Cluster,region\n101.0,30,1500.5,4,2,north\n")
	n := Normalize(raw)
	assert.Equal(t, []string{ClientID, Age, Balance, TxCount, ClusterLabel, "region"}, n.Columns())

	ids, _ := n.Strings(ClientID)
	assert.Equal(t, []string{"101"}, ids)
	bal, _ := n.Floats(Balance)
	assert.Equal(t, 1500.5, bal[0])

	assert.True(t, raw.Has("CIFs"))
	assert.False(t, raw.Has(ClientID))
}

func TestNormalizeKeepsLongIdentifiers(t *testing.T) {
	n := Normalize(read(t, "CIFs,balance\n12345678901234567,1\n12345678901234568,2\n 77.00 ,3\n7.5,4\n"))
	ids, _ := n.Strings(ClientID)
	assert.Equal(t, []string{"12345678901234567", "12345678901234568", "77", "7.5"}, ids)
}

func TestNormalizeFirstAliasWins(t *testing.T) {
	n := Normalize(read(t, "Balance,Account_Balance\n1,2\n"))
	bal, _ := n.Floats(Balance)
	assert.Equal(t, []float64{2}, bal)
	// the losing alias passes through under its own name
	other, ok := n.Floats("Balance")
	require.True(t, ok)
	assert.Equal(t, []float64{1}, other)
}

func TestNormalizeCoercion(t *testing.T) {
	n := Normalize(read(t, "client_id,age,balance,tx_count,cluster_label\nA1,x,,3.9,\nA2,41,abc,NA,seg\nA3,50,7,1,1.0\n"))

	age, _ := n.Floats(Age)
	assert.Equal(t, []float64{0, 41, 50}, age)
	bal, _ := n.Floats(Balance)
	assert.Equal(t, []float64{0, 0, 7}, bal)
	tx, _ := n.Floats(TxCount)
	assert.Equal(t, []float64{3, 0, 1}, tx)

	lbl, _ := n.Floats(ClusterLabel)
	assert.True(t, math.IsNaN(lbl[0]), "missing label is null")
	assert.True(t, math.IsNaN(lbl[1]), "non-numeric label is null")
	assert.Equal(t, 1.0, lbl[2])
}

func TestNormalizeMissingColumnsStayAbsent(t *testing.T) {
	n := Normalize(read(t, "client_id,balance\n1,2\n"))
	assert.False(t, n.Has(Age))
	assert.False(t, n.Has(ClusterLabel))
	assert.False(t, n.Has(TxCount))
}

func TestResolve(t *testing.T) {
	m := Resolve([]string{"segment", "Cluster", "CIF", "risk"})
	assert.Equal(t, Mapping{ClusterLabel: "Cluster", ClientID: "CIF", RiskScore: "risk"}, m)
	assert.Equal(t, Mapping{TxCount: "Transaction Frequency"}, Resolve([]string{"region", "Transaction Frequency"}))
}
