package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PrettyR/ClientSphere/pkg/data"
)

const clientsCSV = `CIFs,Age,Account_Balance,Transaction_Frequency,Cluster,risk_score,products
1,25,100,0,0,0.1,1
2,30,200,1,0,0.2,1
3,35,300,2,0,0.3,2
4,40,50000,4,1,0.8,3
5,45,60000,7,1,0.9,3
6,50,70000,15,,0.5,2
`

func table(t *testing.T, csv string) *data.Table {
	t.Helper()
	raw, err := data.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return data.Normalize(raw)
}

func clients(t *testing.T) *data.Table { return table(t, clientsCSV) }

func intp(v int) *int { return &v }
