package main

import (
	"github.com/spf13/cobra"

	"github.com/PrettyR/ClientSphere/pkg/analytics"
	"github.com/PrettyR/ClientSphere/pkg/data"
	"github.com/PrettyR/ClientSphere/pkg/recommend"
)

var (
	kmeansK     int
	dbscanEps   float64
	dbscanMin   int
	silhouetteK int
)

var kmeansCmd = tableCommand("kmeans", "Cluster clients with k-means",
	func(cmd *cobra.Command, t *data.Table) (any, error) {
		k := kmeansK
		if !cmd.Flags().Changed("k") {
			k = cfg.Clustering.K
		}
		return analytics.RunKMeans(t, k, kmeansOptions()...)
	})

var dbscanCmd = tableCommand("dbscan", "Cluster clients with DBSCAN",
	func(cmd *cobra.Command, t *data.Table) (any, error) {
		eps, minSamples := dbscanEps, dbscanMin
		if !cmd.Flags().Changed("eps") {
			eps = cfg.Clustering.Eps
		}
		if !cmd.Flags().Changed("min-samples") {
			minSamples = cfg.Clustering.MinSamples
		}
		return analytics.RunDBSCAN(t, eps, minSamples)
	})

var silhouetteCmd = tableCommand("silhouette", "Silhouette score of a k-means run",
	func(cmd *cobra.Command, t *data.Table) (any, error) {
		k := silhouetteK
		if !cmd.Flags().Changed("k") {
			k = cfg.Clustering.K
		}
		return analytics.Silhouette(t, k, kmeansOptions()...)
	})

var (
	recommendCluster int
	recommendClient  string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommended products for a segment or a stored client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if recommendClient != "" {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			res, err := recommend.ForClient(cmd.Context(), s, recommendClient)
			if err != nil {
				return err
			}
			return writeJSON(cmd, res)
		}
		if !cmd.Flags().Changed("cluster") {
			return &analytics.UsageError{Param: "recommend", Reason: "set --cluster or --client"}
		}
		return writeJSON(cmd, map[string]any{
			"cluster":         recommendCluster,
			"recommendations": recommend.For(&recommendCluster),
		})
	},
}

func init() {
	kmeansCmd.Flags().IntVar(&kmeansK, "k", 3, "number of clusters (default: clustering.k)")
	dbscanCmd.Flags().Float64Var(&dbscanEps, "eps", 0.5, "neighbourhood radius (default: clustering.eps)")
	dbscanCmd.Flags().IntVar(&dbscanMin, "min-samples", 5, "core point threshold (default: clustering.min_samples)")
	silhouetteCmd.Flags().IntVar(&silhouetteK, "k", 3, "number of clusters (default: clustering.k)")

	recommendCmd.Flags().IntVar(&recommendCluster, "cluster", 0, "segment id")
	recommendCmd.Flags().StringVar(&recommendClient, "client", "", "stored client id")
}
