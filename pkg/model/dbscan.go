package model

import (
	"fmt"
	"runtime"
	"sync"
)

// Noise is the label DBSCAN gives points outside every dense region.
const Noise = -1

// DBSCAN groups density-connected points. A point is a core point when at
// least MinSamples points, itself included, lie within Eps of it.
type DBSCAN struct {
	Eps        float64
	MinSamples int

	Labels      []int
	CoreSamples []int
	NClusters   int
}

func NewDBSCAN(eps float64, minSamples int) *DBSCAN {
	return &DBSCAN{Eps: eps, MinSamples: minSamples}
}

// Fit labels every row with a cluster id in [0, NClusters) or Noise.
// Clusters are numbered in order of their first core point.
func (d *DBSCAN) Fit(X [][]float64) error {
	if d.Eps <= 0 {
		return fmt.Errorf("%w: eps must be > 0, got %g", ErrInvalidParam, d.Eps)
	}
	if d.MinSamples < 1 {
		return fmt.Errorf("%w: min_samples must be >= 1, got %d", ErrInvalidParam, d.MinSamples)
	}
	n, _, err := checkRows(X)
	if err != nil {
		return err
	}

	neighbors := regionQuery(X, d.Eps*d.Eps)
	core := make([]bool, n)
	d.CoreSamples = d.CoreSamples[:0]
	for i, nb := range neighbors {
		if len(nb) >= d.MinSamples {
			core[i] = true
			d.CoreSamples = append(d.CoreSamples, i)
		}
	}

	d.Labels = make([]int, n)
	for i := range d.Labels {
		d.Labels[i] = Noise
	}
	visited := make([]bool, n)
	cluster := 0
	for i := 0; i < n; i++ {
		if visited[i] || !core[i] {
			continue
		}
		// breadth-first expansion from core point i
		queue := []int{i}
		visited[i] = true
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			d.Labels[p] = cluster
			if !core[p] {
				continue
			}
			for _, q := range neighbors[p] {
				if !visited[q] {
					visited[q] = true
					queue = append(queue, q)
				}
			}
		}
		cluster++
	}
	d.NClusters = cluster
	return nil
}

// Assignments returns the labels of the fitted rows.
func (d *DBSCAN) Assignments() []int { return d.Labels }

// regionQuery returns, for every row, the indices within sqrt(eps2), in
// ascending order and including the row itself.
func regionQuery(X [][]float64, eps2 float64) [][]int {
	n := len(X)
	out := make([][]int, n)
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, n)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				var nb []int
				for j := 0; j < n; j++ {
					if euclidSquared(X[i], X[j]) <= eps2 {
						nb = append(nb, j)
					}
				}
				out[i] = nb
			}
		}(start, end)
	}
	wg.Wait()
	return out
}
