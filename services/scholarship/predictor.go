package scholarship

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Predictor turns a query into a recommended-scholarship label.
type Predictor interface {
	Predict(ctx context.Context, q Query) (Result, error)
}

// Classifier is the raw model boundary. It may assume its input has been
// validated.
type Classifier interface {
	Classify(ctx context.Context, q Query) (Result, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, q Query) (Result, error)

func (f ClassifierFunc) Classify(ctx context.Context, q Query) (Result, error) {
	return f(ctx, q)
}

// NewPredictor wraps c so that every query is validated first. Invalid
// queries fail with a *ValidationError and never reach c; every failure
// from c is reported as a *PredictionError.
func NewPredictor(c Classifier) Predictor {
	return &guardedPredictor{classifier: c}
}

type guardedPredictor struct {
	classifier Classifier
}

func (p *guardedPredictor) Predict(ctx context.Context, q Query) (Result, error) {
	if err := Validate(q); err != nil {
		return Result{}, err
	}
	if p.classifier == nil {
		return Result{}, ErrModelUnavailable(errors.New("no classifier configured"))
	}

	res, err := p.classifier.Classify(ctx, q)
	if err != nil {
		var perr *PredictionError
		if errors.As(err, &perr) {
			return Result{}, err
		}
		return Result{}, ErrModelUnavailable(err)
	}
	if strings.TrimSpace(res.Label) == "" {
		return Result{}, ErrNoLabel(errors.New("classifier returned an empty label"))
	}
	return res, nil
}

// Stub always returns Label. It is the deterministic classifier used in
// tests and demos.
type Stub struct {
	Label string
}

func (s Stub) Classify(ctx context.Context, _ Query) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{Label: s.Label, Model: "stub"}, nil
}

// Unavailable returns a classifier that always fails with cause. It stands
// in for a model that could not be loaded; the failure is permanent for the
// life of the process.
func Unavailable(cause error) Classifier {
	return ClassifierFunc(func(context.Context, Query) (Result, error) {
		return Result{}, ErrModelUnavailable(fmt.Errorf("model not loaded: %w", cause))
	})
}
