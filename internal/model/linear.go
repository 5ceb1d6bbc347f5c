package model

import "fmt"

// LinearClassifier scores every class with its own weight row and picks the
// highest score. Ties go to the lowest label.
type LinearClassifier struct {
	weights    [][]float64
	intercepts []float64
}

func NewLinearClassifier(weights [][]float64, intercepts []float64) (*LinearClassifier, error) {
	if len(weights) == 0 || len(weights) != len(intercepts) {
		return nil, fmt.Errorf("%w: classifier has %d weight rows and %d intercepts", ErrInvalidArtifact, len(weights), len(intercepts))
	}
	n := len(weights[0])
	for i, row := range weights {
		if len(row) == 0 || len(row) != n {
			return nil, fmt.Errorf("%w: classifier weight row %d has %d values, expected %d", ErrInvalidArtifact, i, len(row), n)
		}
	}
	return &LinearClassifier{weights: weights, intercepts: intercepts}, nil
}

func (c *LinearClassifier) Features() int { return len(c.weights[0]) }

func (c *LinearClassifier) Classes() int { return len(c.weights) }

func (c *LinearClassifier) Classify(x []float64) (int, error) {
	if len(x) != c.Features() {
		return 0, fmt.Errorf("%w: classifier expects %d features, got %d", ErrFeatureMismatch, c.Features(), len(x))
	}
	best := 0
	bestScore := 0.0
	for label, row := range c.weights {
		score := dot(row, x) + c.intercepts[label]
		if label == 0 || score > bestScore {
			best, bestScore = label, score
		}
	}
	return best, nil
}

// LinearRegressor is coefficients·x + intercept.
type LinearRegressor struct {
	coefficients []float64
	intercept    float64
}

func NewLinearRegressor(coefficients []float64, intercept float64) (*LinearRegressor, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("%w: regressor has no coefficients", ErrInvalidArtifact)
	}
	return &LinearRegressor{coefficients: coefficients, intercept: intercept}, nil
}

func (r *LinearRegressor) Features() int { return len(r.coefficients) }

func (r *LinearRegressor) Regress(x []float64) (float64, error) {
	if len(x) != len(r.coefficients) {
		return 0, fmt.Errorf("%w: regressor expects %d features, got %d", ErrFeatureMismatch, len(r.coefficients), len(x))
	}
	return dot(r.coefficients, x) + r.intercept, nil
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
