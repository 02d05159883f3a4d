package model

import (
	"math"
	"runtime"
	"sync"
)

// Silhouette returns the mean silhouette coefficient of a labelling. Every
// distinct label, including Noise, counts as a cluster. ok is false when the
// number of distinct labels is not between 2 and len(X)-1, where the score
// is undefined.
func Silhouette(X [][]float64, labels []int) (score float64, ok bool) {
	n := len(X)
	if n == 0 || len(labels) != n {
		return 0, false
	}
	// compact label ids in order of first appearance
	ids := map[int]int{}
	idx := make([]int, n)
	for i, l := range labels {
		k, seen := ids[l]
		if !seen {
			k = len(ids)
			ids[l] = k
		}
		idx[i] = k
	}
	nl := len(ids)
	if nl < 2 || nl > n-1 {
		return 0, false
	}
	sizes := make([]int, nl)
	for _, k := range idx {
		sizes[k]++
	}

	s := make([]float64, n)
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
			sums := make([]float64, nl)
			for i := start; i < end; i++ {
				for k := range sums {
					sums[k] = 0
				}
				for j := 0; j < n; j++ {
					if j != i {
						sums[idx[j]] += math.Sqrt(euclidSquared(X[i], X[j]))
					}
				}
				own := idx[i]
				if sizes[own] == 1 {
					s[i] = 0
					continue
				}
				a := sums[own] / float64(sizes[own]-1)
				b := math.Inf(1)
				for k := 0; k < nl; k++ {
					if k == own {
						continue
					}
					if m := sums[k] / float64(sizes[k]); m < b {
						b = m
					}
				}
				if d := math.Max(a, b); d > 0 {
					s[i] = (b - a) / d
				}
			}
		}(start, end)
	}
	wg.Wait()

	total := 0.0
	for _, v := range s {
		total += v
	}
	return total / float64(n), true
}

// AccuracyInt is the share of positions where yPred equals yTrue.
func AccuracyInt(yTrue []int, yPred []int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}
