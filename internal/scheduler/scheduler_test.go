package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingResetter struct {
	calls atomic.Int32
	err   error
}

func (r *countingResetter) ResetDailyQuests(ctx context.Context) (int, error) {
	r.calls.Add(1)
	return 2, r.err
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New(Config{Spec: "not a schedule"}, &countingResetter{}, zerolog.Nop())
	require.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	var buf bytes.Buffer
	r := &countingResetter{}
	s, err := New(Config{Spec: "0 0 * * *", Location: time.UTC}, r, zerolog.New(&buf))
	require.NoError(t, err)

	s.RunOnce(context.Background())
	assert.EqualValues(t, 1, r.calls.Load())
	assert.Contains(t, buf.String(), "daily quest reset completed")

	buf.Reset()
	r.err = errors.New("store closed")
	s.RunOnce(context.Background())
	assert.Contains(t, buf.String(), "daily quest reset failed")
}

func TestScheduler_FiresAndStops(t *testing.T) {
	r := &countingResetter{}
	s, err := New(Config{Spec: "@every 1s", Location: time.UTC}, r, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	assert.False(t, s.Next().IsZero())

	require.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	s.Stop()
}

func TestScheduler_MidnightInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	s, err := New(Config{Spec: "0 0 * * *", Location: loc}, &countingResetter{}, zerolog.Nop())
	require.NoError(t, err)
	s.Start(context.Background())
	defer s.Stop()

	next := s.Next().In(loc)
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 0, next.Minute())
}
