package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/arise/internal/metrics"
	"github.com/abhisek/arise/internal/store"
)

type purposeKey struct{}

// WithPurpose labels the calls made with ctx, e.g. "skill-analysis".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func purposeOf(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unlabeled"
}

// Recorder traces each call to the logger and metrics and appends it to
// the LLM event log.
type Recorder struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

// Record wraps p. events and m may be nil.
func Record(p Provider, provider string, events store.EventRepo, log zerolog.Logger, m *metrics.Metrics) *Recorder {
	return &Recorder{inner: p, provider: provider, events: events, log: log, metrics: m}
}

func (r *Recorder) ModelID() string { return r.inner.ModelID() }

func (r *Recorder) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     purposeOf(ctx),
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	r.metrics.LLMRequest(ev.Model, ev.Success, elapsed)
	logEv := r.log.Debug()
	if err != nil {
		logEv = r.log.Warn().Err(err)
	}
	logEv.Str("model", ev.Model).
		Str("purpose", ev.Purpose).
		Int64("latency_ms", ev.LatencyMs).
		Int("tokens", ev.InputTokens+ev.OutputTokens).
		Msg("llm request")

	if r.events != nil {
		if lerr := r.events.AppendLLMRequest(ctx, ev); lerr != nil {
			r.log.Warn().Err(lerr).Str("purpose", ev.Purpose).Msg("failed to record llm event")
		}
	}
	return resp, err
}

// transcript renders req for the event log.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "system:\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "user:\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\nschema %s:\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
