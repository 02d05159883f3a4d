package model

import (
	"math"
	"math/rand"
	"sort"
)

// ---------------------------
// Types & options
// ---------------------------

// DecisionTreeClassifier is a CART-style classifier on numeric features.
type DecisionTreeClassifier struct {
	// Hyperparameters / options
	MaxDepth            int     // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit     int     // minimum samples to attempt a split
	MinSamplesLeaf      int     // minimum samples required in each leaf
	Criterion           string  // "gini" (default) or "entropy"
	MaxFeatures         int     // 0 => use all features, >0 => number of features sampled per split
	MinImpurityDecrease float64 // minimal impurity decrease to accept a split
	RandomState         int64   // seed for feature subsampling

	// internals
	root        *dtNode
	classes     []int // sorted unique class labels (order used by probas)
	classPos    map[int]int
	nFeatures   int
	nNodes      int
	importances []float64 // unnormalized weighted impurity decrease per feature
}

// dtNode holds a node in the tree.
type dtNode struct {
	isLeaf    bool
	feature   int
	threshold float64 // x <= threshold => left
	left      *dtNode
	right     *dtNode

	n      int
	probas []float64 // aligned with tree.classes
}

// Option functional config
type Option func(*DecisionTreeClassifier)

func WithMaxDepth(d int) Option { return func(t *DecisionTreeClassifier) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesSplit = n }
}
func WithMinSamplesLeaf(n int) Option {
	return func(t *DecisionTreeClassifier) { t.MinSamplesLeaf = n }
}
func WithCriterion(c string) Option { return func(t *DecisionTreeClassifier) { t.Criterion = c } }
func WithMaxFeatures(k int) Option  { return func(t *DecisionTreeClassifier) { t.MaxFeatures = k } }
func WithMinImpurityDecrease(v float64) Option {
	return func(t *DecisionTreeClassifier) { t.MinImpurityDecrease = v }
}
func WithRandomState(seed int64) Option {
	return func(t *DecisionTreeClassifier) { t.RandomState = seed }
}

// NewDecisionTreeClassifier returns a classifier with sensible defaults.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	d := &DecisionTreeClassifier{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		Criterion:       "gini",
		RandomState:     42,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ---------------------------
// Public API
// ---------------------------

// Fit trains the tree on every row of X.
func (t *DecisionTreeClassifier) Fit(X [][]float64, y []int) error {
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return t.FitIndices(X, y, idx)
}

// FitIndices trains the tree on the rows named by idx. Repeated indices
// weigh a row more, which is how bootstrap samples are fed in without
// copying X.
func (t *DecisionTreeClassifier) FitIndices(X [][]float64, y []int, idx []int) error {
	_, p, err := checkRows(X)
	if err != nil {
		return err
	}
	if len(y) != len(X) {
		return ErrLengthMismatch
	}
	if len(idx) == 0 {
		return ErrEmptyInput
	}

	t.classPos = map[int]int{}
	t.classes = t.classes[:0]
	for _, i := range idx {
		if _, ok := t.classPos[y[i]]; !ok {
			t.classPos[y[i]] = 0
			t.classes = append(t.classes, y[i])
		}
	}
	sort.Ints(t.classes)
	for i, c := range t.classes {
		t.classPos[c] = i
	}

	t.nFeatures = p
	t.nNodes = 0
	t.importances = make([]float64, p)
	rnd := rand.New(rand.NewSource(t.RandomState))
	t.root = t.buildNode(X, y, append([]int(nil), idx...), 0, rnd)
	return nil
}

// Predict returns the most probable class for every row.
func (t *DecisionTreeClassifier) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i := range X {
		out[i] = t.classes[argmaxFloat(t.predictProbaSingle(X[i]))]
	}
	return out
}

// PredictProba returns per-class probabilities aligned with Classes.
func (t *DecisionTreeClassifier) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		out[i] = t.predictProbaSingle(X[i])
	}
	return out
}

// Classes returns the sorted class labels seen during Fit.
func (t *DecisionTreeClassifier) Classes() []int { return t.classes }

// NodeCount returns the number of nodes in the fitted tree.
func (t *DecisionTreeClassifier) NodeCount() int { return t.nNodes }

// FeatureImportances returns the normalized total impurity decrease
// contributed by each feature. All zeros when the tree never split.
func (t *DecisionTreeClassifier) FeatureImportances() []float64 {
	out := make([]float64, len(t.importances))
	total := 0.0
	for _, v := range t.importances {
		total += v
	}
	if total <= 0 {
		return out
	}
	for i, v := range t.importances {
		out[i] = v / total
	}
	return out
}

// ---------------------------
// Internal builders & helpers
// ---------------------------

// splitResult holds the best split found for one feature.
type splitResult struct {
	gain      float64
	feature   int
	threshold float64
	impL      float64
	impR      float64
	leftIdx   []int
	rightIdx  []int
}

// pair is a feature value and its row index.
type pair struct {
	v float64
	i int
}

func (t *DecisionTreeClassifier) impurity(counts []int, n int) float64 {
	if t.Criterion == "entropy" {
		return entropyFromCounts(counts, n)
	}
	return giniFromCounts(counts, n)
}

func (t *DecisionTreeClassifier) leaf(node *dtNode, counts []int) *dtNode {
	node.isLeaf = true
	node.probas = countsToProbas(counts)
	return node
}

func (t *DecisionTreeClassifier) buildNode(X [][]float64, y []int, idx []int, depth int, rnd *rand.Rand) *dtNode {
	t.nNodes++
	node := &dtNode{n: len(idx)}

	counts := make([]int, len(t.classes))
	for _, ii := range idx {
		counts[t.classPos[y[ii]]]++
	}
	if isPure(counts) || len(idx) < t.MinSamplesSplit || len(idx) < 2*max(t.MinSamplesLeaf, 1) {
		return t.leaf(node, counts)
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return t.leaf(node, counts)
	}

	p := t.nFeatures
	featIndices := make([]int, p)
	for j := range featIndices {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(i, j int) { featIndices[i], featIndices[j] = featIndices[j], featIndices[i] })
		featIndices = featIndices[:t.MaxFeatures]
	}

	parentImpurity := t.impurity(counts, len(idx))
	best := splitResult{feature: -1}
	for _, f := range featIndices {
		r := t.findBestSplitForFeature(X, y, idx, f, counts, parentImpurity)
		if r.feature >= 0 && r.gain > best.gain {
			best = r
		}
	}
	if best.feature == -1 || best.gain <= t.MinImpurityDecrease {
		return t.leaf(node, counts)
	}

	n := float64(len(idx))
	nl, nr := float64(len(best.leftIdx)), float64(len(best.rightIdx))
	t.importances[best.feature] += n*parentImpurity - nl*best.impL - nr*best.impR

	node.feature = best.feature
	node.threshold = best.threshold
	node.left = t.buildNode(X, y, best.leftIdx, depth+1, rnd)
	node.right = t.buildNode(X, y, best.rightIdx, depth+1, rnd)
	return node
}

// findBestSplitForFeature scans every threshold between distinct sorted
// values of feature f, updating class counts incrementally.
func (t *DecisionTreeClassifier) findBestSplitForFeature(X [][]float64, y []int, idx []int, f int, counts []int, parentImpurity float64) splitResult {
	result := splitResult{feature: -1}

	vals := make([]pair, len(idx))
	for k, ii := range idx {
		vals[k] = pair{X[ii][f], ii}
	}
	sort.SliceStable(vals, func(a, b int) bool { return vals[a].v < vals[b].v })
	if vals[0].v == vals[len(vals)-1].v {
		return result
	}

	n := len(vals)
	minLeaf := max(t.MinSamplesLeaf, 1)
	left := make([]int, len(counts))
	right := append([]int(nil), counts...)
	bestS := -1
	for s := 1; s < n; s++ {
		c := t.classPos[y[vals[s-1].i]]
		left[c]++
		right[c]--
		if vals[s].v == vals[s-1].v || s < minLeaf || n-s < minLeaf {
			continue
		}
		impL := t.impurity(left, s)
		impR := t.impurity(right, n-s)
		weighted := (float64(s)*impL + float64(n-s)*impR) / float64(n)
		if gain := parentImpurity - weighted; gain > result.gain {
			result.gain = gain
			result.feature = f
			result.threshold = (vals[s-1].v + vals[s].v) / 2
			result.impL, result.impR = impL, impR
			bestS = s
		}
	}
	if bestS < 0 {
		return result
	}
	result.leftIdx = make([]int, bestS)
	result.rightIdx = make([]int, n-bestS)
	for k := 0; k < bestS; k++ {
		result.leftIdx[k] = vals[k].i
	}
	for k := bestS; k < n; k++ {
		result.rightIdx[k-bestS] = vals[k].i
	}
	return result
}

func (t *DecisionTreeClassifier) predictProbaSingle(x []float64) []float64 {
	if t.root == nil {
		p := make([]float64, len(t.classes))
		for i := range p {
			p[i] = 1.0 / float64(len(p))
		}
		return p
	}
	node := t.root
	for !node.isLeaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.probas
}

// ---------------------------
// Utilities: impurity & misc
// ---------------------------

func giniFromCounts(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	res := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		res -= p * p
	}
	return res
}

func entropyFromCounts(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(n)
		res -= p * math.Log2(p)
	}
	return res
}

func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

func countsToProbas(counts []int) []float64 {
	n := 0
	for _, c := range counts {
		n += c
	}
	p := make([]float64, len(counts))
	if n == 0 {
		return p
	}
	for i := range counts {
		p[i] = float64(counts[i]) / float64(n)
	}
	return p
}

func argmaxFloat(arr []float64) int {
	best := 0
	for i := 1; i < len(arr); i++ {
		if arr[i] > arr[best] {
			best = i
		}
	}
	return best
}
