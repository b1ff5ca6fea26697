package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/arise/internal/metrics"
	"github.com/abhisek/arise/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestRecorder_RecordsCalls(t *testing.T) {
	repo := &recordingRepo{}
	reg := prometheus.NewRegistry()
	mock := NewMock(
		Reply{JSON: `{"fitness":40}`, Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		Reply{Err: ErrTruncated},
	)
	rec := Record(mock, "openai", repo, zerolog.Nop(), metrics.MustNew(reg))

	ctx := WithPurpose(context.Background(), "skill-analysis")
	_, err := rec.Generate(ctx, scoreRequest)
	require.NoError(t, err)
	_, err = rec.Generate(context.Background(), Request{Prompt: "second"})
	require.ErrorIs(t, err, ErrTruncated)

	require.Len(t, repo.events, 2)
	ok := repo.events[0]
	assert.Equal(t, "openai", ok.Provider)
	assert.Equal(t, "mock", ok.Model)
	assert.Equal(t, "skill-analysis", ok.Purpose)
	assert.True(t, ok.Success)
	assert.Equal(t, 12, ok.InputTokens)
	assert.JSONEq(t, `{"fitness":40}`, ok.ResponseBody)
	assert.Contains(t, ok.RequestBody, "system:\nRate the entry.")
	assert.Contains(t, ok.RequestBody, "schema test-scores:")

	failed := repo.events[1]
	assert.Equal(t, "unlabeled", failed.Purpose)
	assert.False(t, failed.Success)
	assert.Equal(t, ErrTruncated.Error(), failed.ErrorMessage)

	n, err := testutil.GatherAndCount(reg, "arise_llm_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one ok and one error series")
}

func TestRecorder_EventFailureKeepsResult(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	rec := Record(NewMock(Reply{JSON: `{}`}), "mock", repo, zerolog.Nop(), nil)

	resp, err := rec.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", resp.Model)
	assert.Len(t, repo.events, 1)
}

func TestRecorder_NilRepo(t *testing.T) {
	rec := Record(NewMock(Reply{JSON: `{}`}), "mock", nil, zerolog.Nop(), nil)
	_, err := rec.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}
