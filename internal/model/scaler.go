package model

import (
	"fmt"
	"math"
)

// Scaler applies a fitted min-max transform: x*scale + min per feature.
type Scaler struct {
	min   []float64
	scale []float64
}

func NewMinMaxScaler(mins, scale []float64) (*Scaler, error) {
	if len(mins) == 0 || len(mins) != len(scale) {
		return nil, fmt.Errorf("%w: scaler has %d min and %d scale values", ErrInvalidArtifact, len(mins), len(scale))
	}
	return &Scaler{min: append([]float64(nil), mins...), scale: append([]float64(nil), scale...)}, nil
}

func scalerFromArtifact(a Artifact) (*Scaler, error) {
	if a.Kind != KindMinMax {
		return nil, fmt.Errorf("%w %q for scaler", ErrUnknownKind, a.Kind)
	}
	return NewMinMaxScaler(a.Min, a.Scale)
}

func (s *Scaler) Features() int { return len(s.scale) }

func (s *Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.scale) {
		return nil, fmt.Errorf("%w: reading has %d features, scaler expects %d", ErrFeatureMismatch, len(x), len(s.scale))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: feature %d is %v", ErrNonFinite, i, v)
		}
		out[i] = v*s.scale[i] + s.min[i]
	}
	return out, nil
}
