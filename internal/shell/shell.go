// Package shell holds the two user actions of the demo: generate a reading
// and predict a failure from it.
package shell

import (
	"context"
	"errors"
	"sync"

	"predixaai-alerts/internal/pipeline"
	"predixaai-alerts/internal/sensor"
)

const (
	GenerateLabel = "Generate Real-Time Data"
	PredictLabel  = "Predict Failure"

	titleGenerated = "Data Generated"
	titleResult    = "Prediction Result"
	titleError     = "Error"
)

// GeneratedMessage confirms a new current reading.
const GeneratedMessage = "Real-time data has been generated successfully!"

var ErrNoReading = errors.New("no reading available: generate real-time data first")

type Predictor interface {
	Predict(ctx context.Context, reading sensor.Reading) (pipeline.Outcome, error)
}

// Display shows modal-style messages to the user.
type Display interface {
	Info(title, message string)
	Error(title, message string)
}

// Shell owns the current reading. Calls are serialized so HTTP and MQTT
// callers see the same sequence a single user would.
type Shell struct {
	mu        sync.Mutex
	predictor Predictor
	display   Display
	current   sensor.Reading
}

func New(predictor Predictor, display Display) *Shell {
	if display == nil {
		display = Discard
	}
	return &Shell{predictor: predictor, display: display}
}

// GenerateReading replaces the current reading with the fixed sample.
func (s *Shell) GenerateReading() sensor.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sensor.Sample()
	s.display.Info(titleGenerated, GeneratedMessage)
	return s.current.Clone()
}

// SetReading replaces the current reading with externally supplied values.
func (s *Shell) SetReading(r sensor.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = r.Clone()
}

func (s *Shell) Current() (sensor.Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone(), s.current != nil
}

// RunPrediction predicts from the current reading and displays the result
// or the raw error text.
func (s *Shell) RunPrediction(ctx context.Context) (pipeline.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runLocked(ctx)
}

// Submit replaces the current reading and predicts from it in one step, so
// concurrent submitters never predict from each other's readings.
func (s *Shell) Submit(ctx context.Context, r sensor.Reading) (pipeline.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = r.Clone()
	return s.runLocked(ctx)
}

func (s *Shell) runLocked(ctx context.Context) (pipeline.Outcome, error) {
	if s.current == nil {
		s.display.Error(titleError, ErrNoReading.Error())
		return pipeline.Outcome{}, ErrNoReading
	}
	out, err := s.predictor.Predict(ctx, s.current)
	if err != nil {
		s.display.Error(titleError, err.Error())
		return pipeline.Outcome{}, err
	}
	s.display.Info(titleResult, out.Message)
	return out, nil
}
