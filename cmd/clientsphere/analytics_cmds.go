package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PrettyR/ClientSphere/pkg/analytics"
	"github.com/PrettyR/ClientSphere/pkg/charts"
	"github.com/PrettyR/ClientSphere/pkg/data"
	"github.com/PrettyR/ClientSphere/pkg/model"
)

// tableCommand builds a command that resolves the dataset and prints what
// fn computes from it.
func tableCommand(use, short string, fn func(cmd *cobra.Command, t *data.Table) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTable(cmd.Context())
			if err != nil {
				return err
			}
			v, err := fn(cmd, t)
			if err != nil {
				return err
			}
			return writeJSON(cmd, v)
		},
	}
}

var overviewCmd = tableCommand("overview", "Client and segment totals",
	func(_ *cobra.Command, t *data.Table) (any, error) { return analytics.Overview(t), nil })

var summaryCmd = tableCommand("summary", "Every chart dataset in one payload",
	func(_ *cobra.Command, t *data.Table) (any, error) { return analytics.ChartsSummary(t), nil })

var distributionCmd = tableCommand("distribution", "Per-segment sizes and means",
	func(_ *cobra.Command, t *data.Table) (any, error) { return analytics.SegmentDistribution(t), nil })

var (
	aggColumn string
	aggFunc   string
)

var aggregateCmd = tableCommand("aggregate", "Sum or mean of a column per segment",
	func(_ *cobra.Command, t *data.Table) (any, error) {
		agg, err := analytics.ParseAgg(aggFunc)
		if err != nil {
			return nil, err
		}
		return analytics.GroupAggregate(t, aggColumn, agg)
	})

var histogramCmd = tableCommand("histogram", "Bucketed transaction, product or balance counts",
	func(_ *cobra.Command, t *data.Table) (any, error) { return analytics.Histogram(t), nil })

var boxplotCmd = tableCommand("boxplot", "Five-number summary of age or balance per segment",
	func(_ *cobra.Command, t *data.Table) (any, error) { return analytics.Boxplot(t), nil })

var scatterLimit int

var scatterCmd = tableCommand("scatter", "Balance against risk score per client",
	func(_ *cobra.Command, t *data.Table) (any, error) { return analytics.Scatter(t, scatterLimit), nil })

var correlationCmd = tableCommand("correlation", "Pearson correlation between numeric columns",
	func(_ *cobra.Command, t *data.Table) (any, error) { return analytics.Correlation(t), nil })

var anovaCmd = tableCommand("anova", "One-way ANOVA of every feature across segments",
	func(_ *cobra.Command, t *data.Table) (any, error) { return analytics.ANOVA(t) })

var importanceTrees int

var importanceCmd = tableCommand("importance", "Random forest feature importance for the segment label",
	func(cmd *cobra.Command, t *data.Table) (any, error) {
		trees := importanceTrees
		if !cmd.Flags().Changed("trees") {
			trees = cfg.Importance.Trees
		}
		return analytics.FeatureImportance(cmd.Context(), t, trees, cfg.Importance.Seed,
			model.WithForestCriterion(cfg.Importance.Criterion))
	})

var chartsDir string

var chartsCmd = tableCommand("charts", "Render the dashboard charts as PNG files",
	func(cmd *cobra.Command, t *data.Table) (any, error) {
		dir := chartsDir
		if dir == "" {
			dir = cfg.Charts.Dir
		}
		paths, err := charts.NewRenderer(dir, cfg.Charts.WidthInches).Render(analytics.ChartsSummary(t))
		if err != nil {
			return nil, err
		}
		logger.Info("charts rendered", zap.String("dir", dir), zap.Int("files", len(paths)))
		if paths == nil {
			paths = []string{}
		}
		return map[string]any{"files": paths}, nil
	})

func init() {
	aggregateCmd.Flags().StringVar(&aggColumn, "column", data.Balance, "numeric column to reduce")
	aggregateCmd.Flags().StringVar(&aggFunc, "func", "sum", "sum or mean")
	scatterCmd.Flags().IntVar(&scatterLimit, "limit", analytics.DefaultScatterLimit, "maximum number of points")
	importanceCmd.Flags().IntVar(&importanceTrees, "trees", analytics.DefaultTrees, "number of trees (default: importance.trees)")
	chartsCmd.Flags().StringVar(&chartsDir, "dir", "", "output directory (default: charts.dir)")
}
