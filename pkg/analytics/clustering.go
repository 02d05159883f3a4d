package analytics

import (
	"errors"

	"github.com/PrettyR/ClientSphere/pkg/data"
	"github.com/PrettyR/ClientSphere/pkg/dataprep"
	"github.com/PrettyR/ClientSphere/pkg/model"
)

// ClusteringResult is the outcome of one clustering run. Labels align with
// the table rows. Centers are in standardized feature space and only set
// for k-means. Silhouette is nil when the score is undefined.
type ClusteringResult struct {
	Algorithm  string      `json:"algorithm"`
	Features   []string    `json:"features"`
	Labels     []int       `json:"labels"`
	Centers    [][]float64 `json:"centers,omitempty"`
	Silhouette *float64    `json:"silhouette"`
	NClusters  int         `json:"n_clusters"`
	NNoise     int         `json:"n_noise"`
}

func emptyResult(algorithm string) ClusteringResult {
	return ClusteringResult{Algorithm: algorithm, Features: []string{}, Labels: []int{}}
}

func features(t *data.Table) ([][]float64, []string, error) {
	X, names, err := dataprep.Prepare(t, nil)
	if err != nil {
		return nil, nil, err
	}
	if len(names) == 0 {
		return nil, nil, usagef("table", "no numeric feature columns")
	}
	return X, names, nil
}

// RunKMeans partitions the clients into k clusters.
func RunKMeans(t *data.Table, k int, opts ...model.KMeansOption) (ClusteringResult, error) {
	if k < 1 {
		return ClusteringResult{}, usagef("k", "must be >= 1, got %d", k)
	}
	res := emptyResult("kmeans")
	if t.Empty() {
		return res, nil
	}
	if k > t.Len() {
		return ClusteringResult{}, usagef("k", "%d exceeds the %d available rows", k, t.Len())
	}
	X, names, err := features(t)
	if err != nil {
		return ClusteringResult{}, err
	}

	km := model.NewKMeans(k, opts...)
	if err := km.Fit(X); err != nil {
		if errors.Is(err, model.ErrInvalidParam) || errors.Is(err, model.ErrTooFewSamples) {
			return ClusteringResult{}, usagef("kmeans", "%v", err)
		}
		return ClusteringResult{}, err
	}
	res.Features = names
	res.Labels = km.Labels
	res.Centers = km.Centroids
	res.NClusters = k
	if k >= 2 {
		if s, ok := model.Silhouette(X, km.Labels); ok {
			res.Silhouette = ptr(s)
		}
	}
	return res, nil
}

// RunDBSCAN groups density-connected clients. Points in no dense region
// are labelled model.Noise.
func RunDBSCAN(t *data.Table, eps float64, minSamples int) (ClusteringResult, error) {
	if !(eps > 0) {
		return ClusteringResult{}, usagef("eps", "must be > 0, got %g", eps)
	}
	if minSamples < 1 {
		return ClusteringResult{}, usagef("min_samples", "must be >= 1, got %d", minSamples)
	}
	res := emptyResult("dbscan")
	if t.Empty() {
		return res, nil
	}
	X, names, err := features(t)
	if err != nil {
		return ClusteringResult{}, err
	}

	db := model.NewDBSCAN(eps, minSamples)
	if err := db.Fit(X); err != nil {
		return ClusteringResult{}, err
	}
	res.Features = names
	res.Labels = db.Labels
	res.NClusters = db.NClusters
	for _, l := range db.Labels {
		if l == model.Noise {
			res.NNoise++
		}
	}
	// noise takes part in the score as a label of its own
	if db.NClusters > 1 && res.NNoise < len(db.Labels) {
		if s, ok := model.Silhouette(X, db.Labels); ok {
			res.Silhouette = ptr(s)
		}
	}
	return res, nil
}

// SilhouetteResult is the cohesion of a k-means run.
type SilhouetteResult struct {
	K          int      `json:"k"`
	Silhouette *float64 `json:"silhouette"`
}

// Silhouette scores a k-means partition into k >= 2 clusters.
func Silhouette(t *data.Table, k int, opts ...model.KMeansOption) (SilhouetteResult, error) {
	if k < 2 {
		return SilhouetteResult{}, usagef("k", "must be >= 2, got %d", k)
	}
	res, err := RunKMeans(t, k, opts...)
	if err != nil {
		return SilhouetteResult{}, err
	}
	return SilhouetteResult{K: k, Silhouette: res.Silhouette}, nil
}
