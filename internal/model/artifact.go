// Package model loads the fitted scaler, classifier and regressor artifacts
// and evaluates them on sensor readings.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrFeatureMismatch = errors.New("feature count mismatch")
	ErrUnknownKind     = errors.New("unknown artifact kind")
	ErrInvalidArtifact = errors.New("invalid artifact")
	ErrNonFinite       = errors.New("input contains infinity or NaN")
)

const (
	KindMinMax = "minmax"
	KindLinear = "linear"
	KindTree   = "tree"
)

// Artifact is the serialized form shared by all three model files. Only the
// fields relevant to Kind are set.
type Artifact struct {
	Kind         string      `json:"kind" yaml:"kind"`
	Min          []float64   `json:"min,omitempty" yaml:"min,omitempty"`
	Scale        []float64   `json:"scale,omitempty" yaml:"scale,omitempty"`
	Weights      [][]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
	Intercepts   []float64   `json:"intercepts,omitempty" yaml:"intercepts,omitempty"`
	Coefficients []float64   `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Intercept    float64     `json:"intercept,omitempty" yaml:"intercept,omitempty"`
	Nodes        []TreeNode  `json:"nodes,omitempty" yaml:"nodes,omitempty"`
}

func readArtifact(path string) (Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("read artifact %s: %w", path, err)
	}
	var a Artifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &a)
	default:
		err = json.Unmarshal(data, &a)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	a.Kind = strings.ToLower(strings.TrimSpace(a.Kind))
	return a, nil
}

func writeArtifact(path string, a Artifact) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(a)
	default:
		data, err = json.MarshalIndent(a, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode artifact %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}
