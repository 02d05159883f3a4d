package pipeline

// Transformer is a preprocessing step: fit on data, then transform it.
type Transformer interface {
	Fit(X [][]float64) error
	Transform(X [][]float64) ([][]float64, error)
}

// Pipeline chains multiple transformers. Each step is fitted on the output
// of the previous one.
type Pipeline struct {
	steps []Transformer
}

func New(steps ...Transformer) *Pipeline {
	return &Pipeline{steps: steps}
}

// FitTransform fits every step in order and returns the final output.
func (p *Pipeline) FitTransform(X [][]float64) ([][]float64, error) {
	for _, step := range p.steps {
		if err := step.Fit(X); err != nil {
			return nil, err
		}
		var err error
		X, err = step.Transform(X)
		if err != nil {
			return nil, err
		}
	}
	return X, nil
}
