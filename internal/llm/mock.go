package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/abhisek/arise/internal/apperr"
)

// Reply is one scripted Mock answer. Err, when set, is returned instead.
type Reply struct {
	JSON  string
	Usage Usage
	Err   error
}

// Mock answers from a script in order and records every request. Replies
// are not checked against the request schema. Once the script runs out it
// reports the provider as unavailable, which is what ARISE_LLM_PROVIDER=mock
// relies on to exercise classifier fallback.
type Mock struct {
	mu     sync.Mutex
	script []Reply
	calls  []Request
}

// NewMock creates a Mock that plays replies in order.
func NewMock(replies ...Reply) *Mock {
	return &Mock{script: replies}
}

func (m *Mock) ModelID() string { return "mock" }

func (m *Mock) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)

	if len(m.script) == 0 {
		return nil, &apperr.UpstreamUnavailableError{Service: ProviderMock, Err: errors.New("script exhausted")}
	}
	r := m.script[0]
	m.script = m.script[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{Content: json.RawMessage(r.JSON), Usage: r.Usage, Model: "mock"}, nil
}

// Calls returns a copy of the requests seen so far.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
