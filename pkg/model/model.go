package model

import "errors"

var (
	ErrEmptyInput     = errors.New("model: input data cannot be empty")
	ErrInvalidParam   = errors.New("model: invalid parameter")
	ErrTooFewSamples  = errors.New("model: fewer samples than clusters")
	ErrFeatureCount   = errors.New("model: feature count mismatch")
	ErrLengthMismatch = errors.New("model: X and y length mismatch")
)

// Clusterer is for unsupervised clustering.
type Clusterer interface {
	Fit(X [][]float64) error
	Assignments() []int // one label per fitted row
}

// Classifier predicts integer class labels.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
}

func checkRows(X [][]float64) (n, p int, err error) {
	if len(X) == 0 {
		return 0, 0, ErrEmptyInput
	}
	p = len(X[0])
	for _, row := range X {
		if len(row) != p {
			return 0, 0, ErrFeatureCount
		}
	}
	return len(X), p, nil
}

func euclidSquared(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

var (
	_ Clusterer  = (*KMeans)(nil)
	_ Clusterer  = (*DBSCAN)(nil)
	_ Classifier = (*DecisionTreeClassifier)(nil)
	_ Classifier = (*RandomForest)(nil)
)
