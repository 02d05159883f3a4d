package data

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVInfersKinds(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("id,score,name\n1,2.5,ann\n2,NA,bob\n3,,\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"id", "score", "name"}, tbl.Columns())
	assert.True(t, tbl.IsNumeric("id"))
	assert.True(t, tbl.IsNumeric("score"))
	assert.False(t, tbl.IsNumeric("name"))

	score, _ := tbl.Floats("score")
	assert.Equal(t, 2.5, score[0])
	assert.True(t, math.IsNaN(score[1]))
	assert.True(t, math.IsNaN(score[2]))
}

func TestReadCSVHeaders(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("\ufeff Age ,x,x,,ｂａｌａｎｃｅ\n1,2,3,4,5\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Age", "x", "x.1", "Unnamed: 3", "balance"}, tbl.Columns())
}

func TestReadCSVShortRows(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,b\n1\n2,3\n"))
	require.NoError(t, err)
	b, _ := tbl.Floats("b")
	assert.True(t, math.IsNaN(b[0]))
	assert.Equal(t, 3.0, b[1])
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)

	tbl, err := ReadCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.True(t, tbl.Empty())
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.csv")
	require.NoError(t, os.WriteFile(path, []byte("CIF,Balance\n7,10\n"), 0o644))
	tbl, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteCSV(t *testing.T) {
	tbl := NewTable(2)
	require.NoError(t, tbl.SetText("client_id", []string{"a", "b"}))
	require.NoError(t, tbl.SetNumeric("balance", []float64{1, math.NaN()}))
	require.NoError(t, tbl.SetNumeric("risk", []float64{0.5, 2}))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.Equal(t, "client_id,balance,risk\na,1,0.5\nb,,2\n", buf.String())
}

func TestParseNumber(t *testing.T) {
	v, ok := ParseNumber(" 12.5 ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	for _, s := range []string{"", "NA", "None", "abc", "Inf"} {
		_, ok := ParseNumber(s)
		assert.False(t, ok, s)
	}
}
