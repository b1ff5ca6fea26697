package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/abhisek/arise/internal/apperr"
)

// Retrier retries rate limits and upstream outages with capped exponential
// backoff. A reply that fails its schema is retried once. Truncation is
// never retried since the same MaxTokens would truncate again.
type Retrier struct {
	inner   Provider
	cfg     RetryConfig
	timeout time.Duration
	// sleep is replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps p. A zero timeout leaves the caller's deadline alone.
func WithRetry(p Provider, cfg RetryConfig, timeout time.Duration) *Retrier {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &Retrier{inner: p, cfg: cfg, timeout: timeout, sleep: sleepCtx}
}

func (r *Retrier) ModelID() string { return r.inner.ModelID() }

func (r *Retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var (
		err           error
		resp          *Response
		invalidBudget = 1
	)
	for attempt := 0; attempt < r.cfg.Attempts; attempt++ {
		if attempt > 0 {
			if serr := r.sleep(ctx, r.wait(attempt, err)); serr != nil {
				return nil, err
			}
		}
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var invalid *InvalidOutputError
		switch {
		case ctx.Err() != nil:
			return nil, err
		case errors.As(err, &invalid):
			if invalidBudget == 0 {
				return nil, err
			}
			invalidBudget--
		case !retryable(err):
			return nil, err
		}
	}
	return nil, err
}

func retryable(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl) || apperr.IsUpstreamUnavailable(err)
}

// wait is the pause before attempt (1-based retries). A Retry-After hint
// wins; otherwise Wait doubles per attempt up to MaxWait, with up to 25%
// subtracted as jitter.
func (r *Retrier) wait(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	d := r.cfg.Wait << (attempt - 1)
	if r.cfg.MaxWait > 0 && (d > r.cfg.MaxWait || d <= 0) {
		d = r.cfg.MaxWait
	}
	if d <= 0 {
		return 0
	}
	return d - time.Duration(rand.Int64N(int64(d)/4+1))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
