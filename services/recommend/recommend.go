// Package recommend turns a scholarship query into something the education
// screen can always display.
package recommend

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"uplift/backend/services/scholarship"
)

// UnavailableLabel is shown in place of a scholarship when none can be given.
const UnavailableLabel = "Recommendation unavailable"

// Failure says why a recommendation is unavailable.
type Failure string

const (
	FailureNone                  Failure = ""
	FailureInvalidInput          Failure = "invalid_input"
	FailureClassifierUnavailable Failure = "classifier_unavailable"
)

// Recommendation is the display state of one request. Label is always
// safe to show.
type Recommendation struct {
	Label     string  `json:"label"`
	Available bool    `json:"available"`
	Failure   Failure `json:"failure,omitempty"`
	Field     string  `json:"field,omitempty"`
	Model     string  `json:"model,omitempty"`
}

// Service runs one prediction per call. It holds no per-request state and
// never retries.
type Service struct {
	predictor scholarship.Predictor
	logger    *zap.Logger
	tracer    trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithTracerProvider records spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

const tracerName = "uplift/backend/services/recommend"

// NewService builds a Service around predictor.
func NewService(predictor scholarship.Predictor, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		predictor: predictor,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend asks the predictor for a label. Validation and prediction
// failures are logged and turned into an unavailable Recommendation.
func (s *Service) Recommend(ctx context.Context, q scholarship.Query) Recommendation {
	ctx, span := s.tracer.Start(ctx, "recommend.Recommend")
	defer span.End()

	res, err := s.predictor.Predict(ctx, q)
	if err == nil {
		span.SetAttributes(
			attribute.Bool("recommend.available", true),
			attribute.String("recommend.model", res.Model),
		)
		s.logger.Info("Recommended scholarship",
			zap.String("label", res.Label),
			zap.String("model", res.Model),
		)
		return Recommendation{Label: res.Label, Available: true, Model: res.Model}
	}

	rec := Recommendation{Label: UnavailableLabel}
	var verr *scholarship.ValidationError
	var perr *scholarship.PredictionError
	switch {
	case errors.As(err, &verr):
		rec.Failure = FailureInvalidInput
		rec.Field = verr.Field
		s.logger.Warn("Scholarship query rejected",
			zap.String("failure", string(rec.Failure)),
			zap.String("field", verr.Field),
			zap.String("value", truncate(verr.Value, maxLoggedValue)),
		)
	case errors.As(err, &perr):
		rec.Failure = FailureClassifierUnavailable
		s.logger.Error("Scholarship classifier failed",
			zap.String("failure", string(rec.Failure)),
			zap.String("kind", string(perr.Kind)),
			zap.Error(err),
		)
	default:
		rec.Failure = FailureClassifierUnavailable
		s.logger.Error("Unexpected scholarship prediction error",
			zap.String("failure", string(rec.Failure)),
			zap.Error(err),
		)
	}

	span.SetAttributes(
		attribute.Bool("recommend.available", false),
		attribute.String("recommend.failure", string(rec.Failure)),
	)
	span.SetStatus(codes.Error, string(rec.Failure))
	return rec
}

// maxLoggedValue bounds how much of a rejected value reaches the log.
const maxLoggedValue = 64

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Dispatch runs Recommend on its own goroutine and delivers exactly one
// Recommendation on the returned channel, which is then closed. Cancelling
// ctx does not abort the prediction.
func (s *Service) Dispatch(ctx context.Context, q scholarship.Query) <-chan Recommendation {
	out := make(chan Recommendation, 1)
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(out)
		out <- s.Recommend(ctx, q)
	}()
	return out
}
