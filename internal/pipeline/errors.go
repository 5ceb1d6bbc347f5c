package pipeline

import (
	"errors"
	"fmt"

	"predixaai-alerts/internal/model"
)

// Kind classifies pipeline failures. The set is closed.
type Kind string

const (
	KindLoad       Kind = "LoadError"
	KindScaling    Kind = "ScalingError"
	KindPrediction Kind = "PredictionError"
	KindStore      Kind = "StoreError"
)

// Error wraps a failure with the pipeline stage that produced it. Error()
// is the raw cause text, which is what the shell displays.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the kind of a pipeline error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return "", false
}

var (
	ErrStoreNotConfigured = errors.New("alert log not configured")
	ErrNonFiniteEstimate  = errors.New("regressor returned a non-finite time to failure")
)

// LoadModels loads the model artifacts, reporting failures as KindLoad.
func LoadModels(dir string, files model.Files) (*model.Store, error) {
	store, err := model.Load(dir, files)
	if err != nil {
		return nil, wrap(KindLoad, fmt.Errorf("load models from %s: %w", dir, err))
	}
	return store, nil
}
