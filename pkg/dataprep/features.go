package dataprep

import (
	"github.com/PrettyR/ClientSphere/pkg/data"
	"github.com/PrettyR/ClientSphere/pkg/pipeline"
	"github.com/PrettyR/ClientSphere/pkg/stats"
)

// AlwaysExcluded lists columns that are never features: the cluster label
// and the client identifier.
var AlwaysExcluded = []string{data.ClusterLabel, data.ClientID}

// FeatureColumns returns the numeric columns of t that are not excluded, in
// table order.
func FeatureColumns(t *data.Table, excluded []string) []string {
	skip := make(map[string]struct{}, len(excluded)+len(AlwaysExcluded))
	for _, c := range AlwaysExcluded {
		skip[c] = struct{}{}
	}
	for _, c := range excluded {
		skip[c] = struct{}{}
	}
	var out []string
	for _, c := range t.NumericColumns() {
		if _, ok := skip[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// FeatureSelect builds a row-major matrix from the given numeric columns.
func FeatureSelect(t *data.Table, names []string) [][]float64 {
	X := make([][]float64, t.Len())
	cols := make([][]float64, len(names))
	for j, n := range names {
		cols[j], _ = t.Floats(n)
	}
	for i := range X {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		X[i] = row
	}
	return X
}

// NewPreprocessor returns the numeric preprocessing chain: median
// imputation followed by standardization.
func NewPreprocessor() *pipeline.Pipeline {
	return pipeline.New(NewMedianImputer(), stats.NewStandardScaler())
}

// Prepare selects the feature columns of t, imputes missing values with the
// column median and standardizes them. The scaler is fitted on this call's
// rows only. The matrix has one row per table row and one column per name.
func Prepare(t *data.Table, excluded []string) ([][]float64, []string, error) {
	names := FeatureColumns(t, excluded)
	X := FeatureSelect(t, names)
	if len(names) == 0 {
		return X, names, nil
	}
	Z, err := NewPreprocessor().FitTransform(X)
	if err != nil {
		return nil, nil, err
	}
	return Z, names, nil
}
