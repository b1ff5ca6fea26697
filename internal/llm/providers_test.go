package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/arise/internal/apperr"
)

var scoreSchema = &Schema{
	Name: "test-scores",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"fitness": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		},
		"required":             []string{"fitness"},
		"additionalProperties": false,
	},
}

var scoreRequest = Request{
	System:    "Rate the entry.",
	Prompt:    "Ran five miles before work.",
	Schema:    scoreSchema,
	MaxTokens: 128,
}

// fakeAPI serves one canned status and body and captures the last request.
type fakeAPI struct {
	mu     sync.Mutex
	status int
	header http.Header
	body   any
	path   string
	req    map[string]any
}

func (f *fakeAPI) seen() (string, map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path, f.req
}

func (f *fakeAPI) reply(status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *fakeAPI) start(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		f.req = nil
		_ = json.Unmarshal(raw, &f.req)
		for k, v := range f.header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_ = json.NewEncoder(w).Encode(f.body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func openAIReply(content, finish string) map[string]any {
	return map[string]any{
		"id":    "chatcmpl-1",
		"model": "gpt-4o-mini-2024-07-18",
		"choices": []any{map[string]any{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 9, "total_tokens": 49},
	}
}

func TestOpenAI(t *testing.T) {
	api := &fakeAPI{status: http.StatusOK, body: openAIReply(`{"fitness":88}`, "stop")}
	p, err := newOpenAI(Config{Provider: ProviderOpenAI, APIKey: "k", Model: "gpt-4o-mini", BaseURL: api.start(t)})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), scoreRequest)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fitness":88}`, string(resp.Content))
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
	assert.Equal(t, 49, resp.Usage.Total())

	path, req := api.seen()
	assert.Equal(t, "/chat/completions", path)
	msgs := req["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, scoreRequest.Prompt, msgs[1].(map[string]any)["content"])
	format := req["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "test-scores", format["json_schema"].(map[string]any)["name"])
}

func TestOpenAI_Failures(t *testing.T) {
	apiError := map[string]any{"error": map[string]any{"message": "nope", "type": "server_error"}}
	tests := []struct {
		name   string
		status int
		body   any
		check  func(t *testing.T, err error)
	}{
		{"rate limited", http.StatusTooManyRequests, apiError, func(t *testing.T, err error) {
			var rl *RateLimitError
			require.ErrorAs(t, err, &rl)
			assert.Equal(t, ProviderOpenRouter, rl.Provider)
		}},
		{"server error", http.StatusBadGateway, apiError, func(t *testing.T, err error) {
			assert.True(t, apperr.IsUpstreamUnavailable(err), "got %v", err)
		}},
		{"truncated", http.StatusOK, openAIReply(`{"fitn`, "length"), func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrTruncated)
		}},
		{"off schema", http.StatusOK, openAIReply(`{"fitness":"lots"}`, "stop"), func(t *testing.T, err error) {
			var inv *InvalidOutputError
			require.ErrorAs(t, err, &inv)
			assert.Equal(t, "test-scores", inv.Schema)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{status: tt.status, body: tt.body}
			p, err := newOpenAI(Config{Provider: ProviderOpenRouter, APIKey: "k", Model: "m", BaseURL: api.start(t)})
			require.NoError(t, err)
			_, err = p.Generate(context.Background(), scoreRequest)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func anthropicReply(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     []any{map[string]any{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 30, "output_tokens": 6},
	}
}

func TestAnthropic(t *testing.T) {
	api := &fakeAPI{status: http.StatusOK, body: anthropicReply(`{"fitness":70}`, "end_turn")}
	p, err := newAnthropic(Config{APIKey: "k", Model: "claude-haiku-4-5", BaseURL: api.start(t)})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), scoreRequest)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fitness":70}`, string(resp.Content))
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)
	assert.Equal(t, Usage{InputTokens: 30, OutputTokens: 6}, resp.Usage)

	path, req := api.seen()
	assert.True(t, strings.HasSuffix(path, "/messages"), path)
	assert.Equal(t, "claude-haiku-4-5", req["model"])
	assert.Contains(t, req, "output_config")

	api.reply(http.StatusOK, anthropicReply(`{"fitness":`, "max_tokens"))
	_, err = p.Generate(context.Background(), scoreRequest)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestAnthropic_RateLimitHonorsRetryAfter(t *testing.T) {
	api := &fakeAPI{
		status: http.StatusTooManyRequests,
		header: http.Header{"Retry-After": []string{"7"}},
		body:   map[string]any{"type": "error", "error": map[string]any{"type": "rate_limit_error", "message": "slow down"}},
	}
	p, err := newAnthropic(Config{APIKey: "k", Model: "claude-haiku-4-5", BaseURL: api.start(t)})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), scoreRequest)
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
}

func TestGemini(t *testing.T) {
	api := &fakeAPI{status: http.StatusOK, body: map[string]any{
		"candidates": []any{map[string]any{
			"content":      map[string]any{"role": "model", "parts": []any{map[string]any{"text": `{"fitness":64}`}}},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{"promptTokenCount": 21, "candidatesTokenCount": 5, "totalTokenCount": 26},
	}}
	p, err := newGemini(context.Background(), Config{APIKey: "k", Model: "gemini-2.0-flash", BaseURL: api.start(t)})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), scoreRequest)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fitness":64}`, string(resp.Content))
	assert.Equal(t, 26, resp.Usage.Total())
	path, req := api.seen()
	assert.True(t, strings.HasSuffix(path, "gemini-2.0-flash:generateContent"), path)

	gc, _ := req["generationConfig"].(map[string]any)
	require.NotNil(t, gc, "request: %v", req)
	assert.Equal(t, "application/json", gc["responseMimeType"])
	assert.Contains(t, gc, "responseJsonSchema")
}

func TestGemini_RateLimited(t *testing.T) {
	api := &fakeAPI{status: http.StatusTooManyRequests, body: map[string]any{
		"error": map[string]any{"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"},
	}}
	p, err := newGemini(context.Background(), Config{APIKey: "k", Model: "gemini-2.0-flash", BaseURL: api.start(t)})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), scoreRequest)
	var rl *RateLimitError
	assert.True(t, errors.As(err, &rl), "got %T: %v", err, err)
}

func TestConstructorsRequireKey(t *testing.T) {
	_, err := newAnthropic(Config{})
	assert.Error(t, err)
	_, err = newOpenAI(Config{Provider: ProviderOpenAI})
	assert.Error(t, err)
	_, err = newGemini(context.Background(), Config{})
	assert.Error(t, err)
}
