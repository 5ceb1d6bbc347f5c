package model

import (
	"errors"
	"fmt"
	"path/filepath"
)

type Classifier interface {
	Classify(x []float64) (int, error)
}

type Regressor interface {
	Regress(x []float64) (float64, error)
}

// Files names the three artifacts inside a model directory.
type Files struct {
	Scaler     string `yaml:"scaler"`
	Classifier string `yaml:"classifier"`
	Regressor  string `yaml:"regressor"`
}

func DefaultFiles() Files {
	return Files{Scaler: "scaler.json", Classifier: "clf_model.json", Regressor: "reg_model.json"}
}

func (f Files) withDefaults() Files {
	def := DefaultFiles()
	if f.Scaler == "" {
		f.Scaler = def.Scaler
	}
	if f.Classifier == "" {
		f.Classifier = def.Classifier
	}
	if f.Regressor == "" {
		f.Regressor = def.Regressor
	}
	return f
}

// Store holds the three fitted artifacts. It is read-only after Load.
type Store struct {
	scaler     *Scaler
	classifier Classifier
	regressor  Regressor
}

func New(scaler *Scaler, classifier Classifier, regressor Regressor) (*Store, error) {
	if scaler == nil || classifier == nil || regressor == nil {
		return nil, errors.New("model store needs a scaler, a classifier and a regressor")
	}
	n := scaler.Features()
	for name, m := range map[string]any{"classifier": classifier, "regressor": regressor} {
		if f, ok := m.(interface{ Features() int }); ok && f.Features() != n {
			return nil, fmt.Errorf("%w: %s expects %d features, scaler produces %d", ErrInvalidArtifact, name, f.Features(), n)
		}
	}
	return &Store{scaler: scaler, classifier: classifier, regressor: regressor}, nil
}

// Load reads and validates the artifacts in dir.
func Load(dir string, files Files) (*Store, error) {
	files = files.withDefaults()
	scalerArt, err := readArtifact(filepath.Join(dir, files.Scaler))
	if err != nil {
		return nil, err
	}
	scaler, err := scalerFromArtifact(scalerArt)
	if err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	clfArt, err := readArtifact(filepath.Join(dir, files.Classifier))
	if err != nil {
		return nil, err
	}
	classifier, err := classifierFromArtifact(clfArt)
	if err != nil {
		return nil, fmt.Errorf("load classifier: %w", err)
	}
	regArt, err := readArtifact(filepath.Join(dir, files.Regressor))
	if err != nil {
		return nil, err
	}
	regressor, err := regressorFromArtifact(regArt)
	if err != nil {
		return nil, fmt.Errorf("load regressor: %w", err)
	}
	return New(scaler, classifier, regressor)
}

func classifierFromArtifact(a Artifact) (Classifier, error) {
	switch a.Kind {
	case KindLinear:
		return NewLinearClassifier(a.Weights, a.Intercepts)
	case KindTree:
		return NewTreeClassifier(a.Nodes)
	default:
		return nil, fmt.Errorf("%w %q for classifier", ErrUnknownKind, a.Kind)
	}
}

func regressorFromArtifact(a Artifact) (Regressor, error) {
	switch a.Kind {
	case KindLinear:
		return NewLinearRegressor(a.Coefficients, a.Intercept)
	case KindTree:
		return NewTreeRegressor(a.Nodes)
	default:
		return nil, fmt.Errorf("%w %q for regressor", ErrUnknownKind, a.Kind)
	}
}

func (s *Store) Features() int { return s.scaler.Features() }

func (s *Store) Scale(reading []float64) ([]float64, error) {
	return s.scaler.Transform(reading)
}

func (s *Store) Classify(scaled []float64) (int, error) {
	return s.classifier.Classify(scaled)
}

// EstimateTime returns the predicted minutes until failure.
func (s *Store) EstimateTime(scaled []float64) (float64, error) {
	return s.regressor.Regress(scaled)
}
