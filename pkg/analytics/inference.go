package analytics

import (
	"context"

	"github.com/PrettyR/ClientSphere/pkg/data"
	"github.com/PrettyR/ClientSphere/pkg/dataprep"
	"github.com/PrettyR/ClientSphere/pkg/model"
	"github.com/PrettyR/ClientSphere/pkg/stats"
)

// CorrelationResult is a square Pearson matrix; Matrix[i][j] pairs
// Columns[i] with Columns[j].
type CorrelationResult struct {
	Columns []string    `json:"columns"`
	Matrix  [][]float64 `json:"matrix"`
}

// Correlation computes Pearson correlations between all numeric columns.
// Undefined coefficients, such as those of a constant column, are 0.
func Correlation(t *data.Table) CorrelationResult {
	res := CorrelationResult{Columns: []string{}, Matrix: [][]float64{}}
	if t.Empty() {
		return res
	}
	names := t.NumericColumns()
	if len(names) == 0 {
		return res
	}
	cols := make([][]float64, len(names))
	for i, n := range names {
		cols[i], _ = t.Floats(n)
	}
	m := stats.CorrelationMatrix(cols)
	res.Columns = names
	res.Matrix = make([][]float64, len(names))
	for i := range names {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = m.At(i, j)
		}
		res.Matrix[i] = row
	}
	return res
}

// ANOVAResult is one feature's one-way test across clusters. FStat and
// PValue are nil when the test is undefined.
type ANOVAResult struct {
	Feature string   `json:"feature"`
	FStat   *float64 `json:"f_stat"`
	PValue  *float64 `json:"p_value"`
}

// ANOVA runs a one-way test per numeric feature with the cluster label as
// the factor. Unassigned rows belong to no group.
func ANOVA(t *data.Table) ([]ANOVAResult, error) {
	if t.Empty() {
		return []ANOVAResult{}, nil
	}
	if !t.Has(data.ClusterLabel) {
		return nil, usagef("table", "no %s column", data.ClusterLabel)
	}
	var groups []group
	for _, g := range groupByCluster(t) {
		if g.cluster != nil {
			groups = append(groups, g)
		}
	}

	out := []ANOVAResult{}
	for _, name := range t.NumericColumns() {
		if name == data.ClusterLabel {
			continue
		}
		vals, _ := t.Floats(name)
		samples := make([][]float64, len(groups))
		for i, g := range groups {
			samples[i] = pick(vals, g.rows)
		}
		r := ANOVAResult{Feature: name}
		if f, p, ok := stats.OneWayANOVA(samples); ok {
			r.FStat, r.PValue = ptr(f), ptr(p)
		}
		out = append(out, r)
	}
	return out, nil
}

// ImportanceResult aligns importances with feature names.
type ImportanceResult struct {
	Features    []string  `json:"features"`
	Importances []float64 `json:"importances"`
	// Accuracy is the forest's accuracy on the rows it was fitted on; null
	// when no forest was fitted.
	Accuracy *float64 `json:"train_accuracy"`
}

// DefaultTrees is the forest size used for feature importance.
const DefaultTrees = 200

// FeatureImportance fits a random forest predicting the cluster label from
// the prepared features and reports how much each feature contributed.
// Unassigned rows are left out. Extra options, such as the split criterion,
// are applied after the tree count and seed.
func FeatureImportance(ctx context.Context, t *data.Table, trees int, seed int64, opts ...model.RandomForestOption) (ImportanceResult, error) {
	res := ImportanceResult{Features: []string{}, Importances: []float64{}}
	if trees < 1 {
		return res, usagef("trees", "must be >= 1, got %d", trees)
	}
	if t.Empty() {
		return res, nil
	}
	if !t.Has(data.ClusterLabel) {
		return res, usagef("table", "no %s column", data.ClusterLabel)
	}

	var rows []int
	var y []int
	for i, l := range Labels(t) {
		if l != nil {
			rows = append(rows, i)
			y = append(y, *l)
		}
	}
	if len(rows) == 0 {
		return res, nil
	}
	X, names, err := dataprep.Prepare(t.Select(rows), nil)
	if err != nil {
		return res, err
	}
	if len(names) == 0 {
		return res, nil
	}

	rf := model.NewRandomForest(append([]model.RandomForestOption{
		model.WithNEstimators(trees),
		model.WithForestSeed(seed),
	}, opts...)...)
	if err := rf.FitContext(ctx, X, y); err != nil {
		return res, err
	}
	res.Features = names
	res.Importances = rf.FeatureImportances()
	res.Accuracy = ptr(model.AccuracyInt(y, rf.Predict(X)))
	return res, nil
}
