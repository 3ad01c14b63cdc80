package scholarship

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("invalid scholarship query")
	// ErrPrediction matches every *PredictionError.
	ErrPrediction = errors.New("scholarship prediction failed")
)

// ValidationError reports a query field outside its declared enumeration.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PredictionKind separates a missing model from a model that had no answer.
type PredictionKind string

const (
	PredictionUnavailable PredictionKind = "unavailable"
	PredictionNoLabel     PredictionKind = "no_label"
)

// PredictionError reports a classifier that could not produce a label.
type PredictionError struct {
	Kind PredictionKind
	Err  error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("scholarship classifier %s: %v", e.Kind, e.Err)
}

func (e *PredictionError) Unwrap() error { return e.Err }

func (e *PredictionError) Is(target error) bool { return target == ErrPrediction }

// ErrModelUnavailable builds the error returned when the model cannot run.
func ErrModelUnavailable(err error) error {
	return &PredictionError{Kind: PredictionUnavailable, Err: err}
}

// ErrNoLabel builds the error returned when the model has no label for a query.
func ErrNoLabel(err error) error {
	return &PredictionError{Kind: PredictionNoLabel, Err: err}
}
