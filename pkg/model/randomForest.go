package model

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// RandomForest for classification
type RandomForest struct {
	// Hyperparameters / options
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int    // 0 => sqrt(number of features)
	Criterion       string // passed to every tree; empty keeps the tree default
	Bootstrap       bool
	RandomState     int64

	// Internal state
	Trees     []*DecisionTreeClassifier
	classes   []int
	nFeatures int
}

// RandomForestOption functional config for RandomForest
type RandomForestOption func(*RandomForest)

func WithNEstimators(n int) RandomForestOption { return func(rf *RandomForest) { rf.NEstimators = n } }
func WithBootstrap(b bool) RandomForestOption  { return func(rf *RandomForest) { rf.Bootstrap = b } }
func WithForestSeed(seed int64) RandomForestOption {
	return func(rf *RandomForest) { rf.RandomState = seed }
}
func WithForestMaxDepth(d int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxDepth = d }
}
func WithForestMaxFeatures(k int) RandomForestOption {
	return func(rf *RandomForest) { rf.MaxFeatures = k }
}
func WithForestCriterion(c string) RandomForestOption {
	return func(rf *RandomForest) { rf.Criterion = c }
}

// NewRandomForest initializes the forest with sensible defaults.
func NewRandomForest(opts ...RandomForestOption) *RandomForest {
	rf := &RandomForest{
		NEstimators:     200,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Bootstrap:       true,
		RandomState:     42,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains the random forest. Trees are fitted concurrently on
// bootstrap index samples; tree i is seeded with RandomState+i so the
// result does not depend on scheduling.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	return rf.FitContext(context.Background(), X, y)
}

// FitContext is Fit with cancellation between trees.
func (rf *RandomForest) FitContext(ctx context.Context, X [][]float64, y []int) error {
	n, p, err := checkRows(X)
	if err != nil {
		return err
	}
	if len(y) != n {
		return ErrLengthMismatch
	}
	if rf.NEstimators < 1 {
		return ErrInvalidParam
	}

	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(p)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	seen := map[int]struct{}{}
	rf.classes = rf.classes[:0]
	for _, c := range y {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			rf.classes = append(rf.classes, c)
		}
	}
	sort.Ints(rf.classes)
	rf.nFeatures = p

	rf.Trees = make([]*DecisionTreeClassifier, rf.NEstimators)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < rf.NEstimators; i++ {
		idx := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := rf.RandomState + int64(idx)
			treeRand := rand.New(rand.NewSource(seed))

			sampleIndices := make([]int, n)
			for j := 0; j < n; j++ {
				if rf.Bootstrap {
					sampleIndices[j] = treeRand.Intn(n)
				} else {
					sampleIndices[j] = j
				}
			}

			opts := []Option{
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMinSamplesLeaf(rf.MinSamplesLeaf),
				WithMaxFeatures(maxFeatures),
				WithRandomState(seed),
			}
			if rf.Criterion != "" {
				opts = append(opts, WithCriterion(rf.Criterion))
			}
			tree := NewDecisionTreeClassifier(opts...)
			if err := tree.FitIndices(X, y, sampleIndices); err != nil {
				return err
			}
			rf.Trees[idx] = tree
			return nil
		})
	}
	return g.Wait()
}

// Classes returns the sorted class labels seen during Fit.
func (rf *RandomForest) Classes() []int { return rf.classes }

// PredictProba averages per-tree class probabilities, aligned with Classes.
func (rf *RandomForest) PredictProba(X [][]float64) [][]float64 {
	pos := make(map[int]int, len(rf.classes))
	for i, c := range rf.classes {
		pos[c] = i
	}
	out := make([][]float64, len(X))
	for i := range out {
		out[i] = make([]float64, len(rf.classes))
	}
	if len(rf.Trees) == 0 {
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(X) + workers - 1) / workers
	var wg sync.WaitGroup
	for s := 0; s < len(X); s += chunk {
		e := min(s+chunk, len(X))
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for _, t := range rf.Trees {
				probas := t.PredictProba(X[s:e])
				for r, pr := range probas {
					for k, v := range pr {
						out[s+r][pos[t.classes[k]]] += v
					}
				}
			}
		}(s, e)
	}
	wg.Wait()

	inv := 1.0 / float64(len(rf.Trees))
	for i := range out {
		for k := range out[i] {
			out[i][k] *= inv
		}
	}
	return out
}

// Predict returns the class with the highest averaged probability.
// Ties go to the smallest class label.
func (rf *RandomForest) Predict(X [][]float64) []int {
	probas := rf.PredictProba(X)
	out := make([]int, len(X))
	for i, pr := range probas {
		if len(pr) > 0 {
			out[i] = rf.classes[argmaxFloat(pr)]
		}
	}
	return out
}

// FeatureImportances returns the mean decrease in impurity per feature,
// averaged over trees that split at least once and normalized to sum to
// one. All zeros when no tree split.
func (rf *RandomForest) FeatureImportances() []float64 {
	out := make([]float64, rf.nFeatures)
	used := 0
	for _, t := range rf.Trees {
		if t == nil || t.NodeCount() <= 1 {
			continue
		}
		for j, v := range t.FeatureImportances() {
			out[j] += v
		}
		used++
	}
	if used == 0 {
		return out
	}
	total := 0.0
	for _, v := range out {
		total += v
	}
	if total <= 0 {
		return out
	}
	for j := range out {
		out[j] /= total
	}
	return out
}
