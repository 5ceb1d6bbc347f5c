package model

import (
	"fmt"
	"os"
	"path/filepath"
)

// sampleRanges are the raw feature ranges the demo scaler is fitted on,
// ordered like sensor.Fields.
var sampleRanges = [][2]float64{
	{0, 720},  // duration
	{20, 120}, // temperature
	{0, 120},  // voltage
	{0, 10},   // current
	{0, 100},  // load
	{0, 100},  // humidity
}

// SampleArtifacts returns a small hand-fitted model set that runs without a
// training pipeline.
func SampleArtifacts() (scaler, classifier, regressor Artifact) {
	mins := make([]float64, len(sampleRanges))
	scale := make([]float64, len(sampleRanges))
	for i, r := range sampleRanges {
		scale[i] = 1 / (r[1] - r[0])
		mins[i] = -r[0] * scale[i]
	}
	scaler = Artifact{Kind: KindMinMax, Min: mins, Scale: scale}
	classifier = Artifact{
		Kind: KindLinear,
		Weights: [][]float64{
			{0, -2, -1, -1, -1, -1}, // normal
			{0, 3, 0, 0, 0.5, 0},    // thermal
			{0, 0, 2, 2, 0, 0},      // electrical
			{1, 0, 0, 0, 2, 0},      // mechanical
			{0, 0, 0, 0, 0, 2.5},    // environmental
		},
		Intercepts: []float64{2.5, -1.5, -1.5, -1, -1.2},
	}
	regressor = Artifact{
		Kind:         KindLinear,
		Coefficients: []float64{-1000, -2000, -1000, -500, -500, -500},
		Intercept:    4000,
	}
	return scaler, classifier, regressor
}

// WriteSampleArtifacts writes SampleArtifacts into dir using the given file
// names. Existing files are overwritten.
func WriteSampleArtifacts(dir string, files Files) error {
	files = files.withDefaults()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	scaler, classifier, regressor := SampleArtifacts()
	if err := writeArtifact(filepath.Join(dir, files.Scaler), scaler); err != nil {
		return err
	}
	if err := writeArtifact(filepath.Join(dir, files.Classifier), classifier); err != nil {
		return err
	}
	return writeArtifact(filepath.Join(dir, files.Regressor), regressor)
}
