package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PrettyR/ClientSphere/pkg/analytics"
	"github.com/PrettyR/ClientSphere/pkg/data"
)

var importCmd = &cobra.Command{
	Use:   "import [file.csv]",
	Short: "Import clients from a CSV file, updating existing client ids",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := s.ImportCSV(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logger.Info("import finished",
			zap.String("file", args[0]),
			zap.String("batch", res.Batch),
			zap.Int("written", res.Written),
			zap.Int("skipped", res.Skipped))
		recorder(s).Record(cmd.Context(), "import", "clients", map[string]any{
			"file": filepath.Base(args[0]), "batch": res.Batch, "written": res.Written,
		})
		return writeJSON(cmd, res)
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored clients to the processed CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		t, err := s.Table(cmd.Context())
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = cfg.Source.ExportCSV
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := data.WriteCSV(f, t); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", out, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		recorder(s).Record(cmd.Context(), "export", "clients", map[string]any{"rows": t.Len()})
		return writeJSON(cmd, map[string]any{"path": out, "rows": t.Len()})
	},
}

var (
	clientsCluster    int
	clientsUnassigned bool
	clientsLimit      int
	clientID          string
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List stored clients, optionally filtered by segment",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		ctx := cmd.Context()

		if clientID != "" {
			r, err := s.Get(ctx, clientID)
			if err != nil {
				return err
			}
			return writeJSON(cmd, r)
		}

		var recs []data.ClientRecord
		switch {
		case clientsUnassigned:
			recs, err = s.ByCluster(ctx, nil)
		case cmd.Flags().Changed("cluster"):
			recs, err = s.ByCluster(ctx, &clientsCluster)
		default:
			recs, err = s.All(ctx)
		}
		if err != nil {
			return err
		}
		if recs == nil {
			recs = []data.ClientRecord{}
		}
		if clientsLimit > 0 && len(recs) > clientsLimit {
			recs = recs[:clientsLimit]
		}
		return writeJSON(cmd, recs)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored client (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.Clear(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("clients cleared", zap.Int64("rows", n))
		recorder(s).Record(cmd.Context(), "clear", "clients", map[string]any{"rows": n})
		return writeJSON(cmd, map[string]any{"deleted": n})
	},
}

var assignK int

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Run k-means on the stored clients and save the labels (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		ctx := cmd.Context()

		t, err := s.Table(ctx)
		if err != nil {
			return err
		}
		k := assignK
		if !cmd.Flags().Changed("k") {
			k = cfg.Clustering.K
		}
		res, err := analytics.RunKMeans(t, k, kmeansOptions()...)
		if err != nil {
			return err
		}
		ids, _ := t.Strings(data.ClientID)
		labels := make(map[string]*int, len(res.Labels))
		for i, l := range res.Labels {
			labels[ids[i]] = &l
		}
		n, err := s.SetLabels(ctx, labels)
		if err != nil {
			return err
		}
		logger.Info("labels assigned", zap.Int("k", k), zap.Int("rows", n))
		recorder(s).Record(ctx, "assign", "clients", map[string]any{"k": k, "rows": n})
		return writeJSON(cmd, map[string]any{
			"k": k, "updated": n, "silhouette": res.Silhouette, "segments": analytics.ClusterCounts(labelled(t, res.Labels)),
		})
	},
}

// labelled returns t with its cluster_label column replaced by labels.
func labelled(t *data.Table, labels []int) *data.Table {
	out := t.Select(allRows(t.Len()))
	vals := make([]float64, len(labels))
	for i, l := range labels {
		vals[i] = float64(l)
	}
	_ = out.SetNumeric(data.ClusterLabel, vals)
	return out
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

var activityLimit int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		entries, err := s.Activity(cmd.Context(), activityLimit)
		if err != nil {
			return err
		}
		return writeJSON(cmd, entries)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: source.export_csv)")

	clientsCmd.Flags().IntVar(&clientsCluster, "cluster", 0, "only clients in this segment")
	clientsCmd.Flags().BoolVar(&clientsUnassigned, "unassigned", false, "only clients without a segment")
	clientsCmd.Flags().IntVar(&clientsLimit, "limit", 0, "maximum number of clients to print")
	clientsCmd.Flags().StringVar(&clientID, "id", "", "print a single client")

	assignCmd.Flags().IntVar(&assignK, "k", 3, "number of clusters (default: clustering.k)")

	activityCmd.Flags().IntVar(&activityLimit, "limit", 50, "maximum number of entries")
}
