package classify

import (
	"context"
	"time"

	"github.com/abhisek/arise/internal/metrics"
	"github.com/rs/zerolog"
)

// Resilient runs a primary classifier under a timeout and degrades to a
// fallback, then to an empty analysis. It never returns an error.
type Resilient struct {
	primary  Classifier
	fallback Classifier
	timeout  time.Duration
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Resilient classifier.
type Option func(*Resilient)

// WithFallback sets the classifier tried when the primary fails.
func WithFallback(c Classifier) Option {
	return func(r *Resilient) { r.fallback = c }
}

// WithTimeout bounds each primary call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Resilient) { r.timeout = d }
}

// WithLogger sets the logger used to report degraded calls.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resilient) { r.log = l }
}

// WithMetrics counts classifier failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resilient) { r.metrics = m }
}

// NewResilient wraps primary.
func NewResilient(primary Classifier, opts ...Option) *Resilient {
	r := &Resilient{primary: primary, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resilient) Name() string { return "resilient(" + r.primary.Name() + ")" }

func (r *Resilient) Classify(ctx context.Context, text string) (Analysis, error) {
	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := r.primary.Classify(callCtx, text)
	if err == nil {
		return nonNil(out), nil
	}
	r.metrics.ClassifierFailed(r.primary.Name())
	r.log.Warn().Err(err).Str("classifier", r.primary.Name()).Msg("classification failed, degrading")

	if r.fallback != nil {
		out, ferr := r.fallback.Classify(ctx, text)
		if ferr == nil {
			return nonNil(out), nil
		}
		r.metrics.ClassifierFailed(r.fallback.Name())
		r.log.Warn().Err(ferr).Str("classifier", r.fallback.Name()).Msg("fallback classification failed")
	}
	return Analysis{}, nil
}

func nonNil(a Analysis) Analysis {
	if a == nil {
		return Analysis{}
	}
	return a
}
