package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/abhisek/arise/internal/apperr"
)

// ErrNotConfigured is returned by FromEnv when no provider is selected and
// no API key can be discovered.
var ErrNotConfigured = errors.New("no LLM provider configured")

// ErrTruncated means the reply hit MaxTokens before the JSON was complete.
var ErrTruncated = errors.New("LLM reply truncated at max tokens")

// RateLimitError is a 429 from the provider.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s rate limited, retry after %s: %v", e.Provider, e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("%s rate limited: %v", e.Provider, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// InvalidOutputError is a reply that is not JSON or fails the schema.
type InvalidOutputError struct {
	Schema string
	Raw    json.RawMessage
	Err    error
}

func (e *InvalidOutputError) Error() string {
	return fmt.Sprintf("LLM output does not match %q: %v", e.Schema, e.Err)
}

func (e *InvalidOutputError) Unwrap() error { return e.Err }

// fromStatus turns an SDK error carrying an HTTP status into a RateLimitError
// for 429 and an upstream-unavailable error otherwise. status is 0 when the
// SDK error carried none, e.g. a dial failure.
func fromStatus(provider string, status int, header http.Header, err error) error {
	if status == http.StatusTooManyRequests {
		return &RateLimitError{Provider: provider, RetryAfter: retryAfter(header), Err: err}
	}
	return &apperr.UpstreamUnavailableError{Service: provider, Err: err}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
