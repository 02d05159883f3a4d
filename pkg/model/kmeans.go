package model

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
)

// KMeans partitions data points into K clusters by minimizing the
// within-cluster sum of squares. Seeding is k-means++ from a fixed seed, so
// identical input produces identical output.
type KMeans struct {
	K       int
	MaxIter int
	NInit   int     // independent seedings; the lowest inertia wins
	Tol     float64 // stop when total squared centroid shift falls below this
	Seed    int64

	Centroids  [][]float64
	Labels     []int
	Inertia    float64 // sum of squared distances to nearest centroid
	Iterations int
}

type KMeansOption func(*KMeans)

func WithMaxIter(n int) KMeansOption   { return func(m *KMeans) { m.MaxIter = n } }
func WithNInit(n int) KMeansOption     { return func(m *KMeans) { m.NInit = n } }
func WithTol(t float64) KMeansOption   { return func(m *KMeans) { m.Tol = t } }
func WithSeed(seed int64) KMeansOption { return func(m *KMeans) { m.Seed = seed } }

// NewKMeans creates a KMeans model with k clusters.
func NewKMeans(k int, opts ...KMeansOption) *KMeans {
	m := &KMeans{K: k, MaxIter: 300, NInit: 1, Tol: 1e-4, Seed: 42}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Fit runs Lloyd's algorithm NInit times and keeps the best run.
func (m *KMeans) Fit(X [][]float64) error {
	if m.K < 1 {
		return fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidParam, m.K)
	}
	n, _, err := checkRows(X)
	if err != nil {
		return err
	}
	if n < m.K {
		return fmt.Errorf("%w: %d samples, k=%d", ErrTooFewSamples, n, m.K)
	}
	nInit := max(m.NInit, 1)
	rnd := rand.New(rand.NewSource(m.Seed))

	m.Inertia = math.Inf(1)
	for run := 0; run < nInit; run++ {
		centers := initCenters(X, m.K, rnd)
		labels, inertia, iters := m.lloyd(X, centers)
		if inertia < m.Inertia {
			m.Centroids, m.Labels, m.Inertia, m.Iterations = centers, labels, inertia, iters
		}
	}
	return nil
}

// Assignments returns the labels of the fitted rows.
func (m *KMeans) Assignments() []int { return m.Labels }

func (m *KMeans) lloyd(X [][]float64, centers [][]float64) ([]int, float64, int) {
	n, p := len(X), len(X[0])
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	iters := 0
	for it := 0; it < m.MaxIter; it++ {
		iters = it + 1
		changed := assignNearest(X, centers, labels)
		if !changed {
			break
		}

		sums := make([][]float64, len(centers))
		counts := make([]int, len(centers))
		for k := range sums {
			sums[k] = make([]float64, p)
		}
		for i, k := range labels {
			counts[k]++
			for j := 0; j < p; j++ {
				sums[k][j] += X[i][j]
			}
		}
		shift := 0.0
		for k := range centers {
			if counts[k] == 0 {
				continue // empty cluster keeps its centroid
			}
			for j := 0; j < p; j++ {
				c := sums[k][j] / float64(counts[k])
				d := c - centers[k][j]
				shift += d * d
				centers[k][j] = c
			}
		}
		if shift <= m.Tol {
			break
		}
	}
	assignNearest(X, centers, labels)

	inertia := 0.0
	for i, k := range labels {
		inertia += euclidSquared(X[i], centers[k])
	}
	return labels, inertia, iters
}

// assignNearest writes the nearest centroid of every row into labels and
// reports whether any label changed. Rows are split into chunks processed in
// parallel; each row is independent so the result does not depend on scheduling.
func assignNearest(X [][]float64, centers [][]float64, labels []int) bool {
	n := len(X)
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (n + workers - 1) / workers
	changed := make([]bool, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, n)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				best := nearest(X[i], centers)
				if labels[i] != best {
					changed[w] = true
					labels[i] = best
				}
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, c := range changed {
		if c {
			return true
		}
	}
	return false
}

func nearest(x []float64, centers [][]float64) int {
	best, bestD := 0, math.MaxFloat64
	for k, c := range centers {
		if d := euclidSquared(x, c); d < bestD {
			best, bestD = k, d
		}
	}
	return best
}

// initCenters picks k starting centroids with k-means++ seeding.
func initCenters(X [][]float64, k int, rnd *rand.Rand) [][]float64 {
	n := len(X)
	centers := make([][]float64, 0, k)
	centers = append(centers, append([]float64(nil), X[rnd.Intn(n)]...))

	distSq := make([]float64, n)
	for i := range distSq {
		distSq[i] = euclidSquared(X[i], centers[0])
	}
	for len(centers) < k {
		total := 0.0
		for _, d := range distSq {
			total += d
		}
		pick := n - 1
		if total > 0 {
			r := rnd.Float64() * total
			cumulative := 0.0
			for i, d := range distSq {
				cumulative += d
				if cumulative >= r && d > 0 {
					pick = i
					break
				}
			}
		} else {
			// all points coincide with a chosen center
			pick = rnd.Intn(n)
		}
		c := append([]float64(nil), X[pick]...)
		centers = append(centers, c)
		for i := range distSq {
			if d := euclidSquared(X[i], c); d < distSq[i] {
				distSq[i] = d
			}
		}
	}
	return centers
}
