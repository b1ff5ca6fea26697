package store

import (
	"context"
	"time"
)

// Bucket names used by the progression engine.
const (
	BucketUsers       = "users"
	BucketDailyQuests = "dailyQuests"
	BucketSystem      = "system"
)

// KeyLastQuestReset is the system bucket key holding the last reset time.
const KeyLastQuestReset = "lastQuestReset"

// KV is a bucketed document store. Values are JSON encoded.
type KV interface {
	// Get decodes the value at bucket/key into dst. It reports false
	// when no value is stored.
	Get(ctx context.Context, bucket, key string, dst any) (bool, error)

	// Put encodes v and stores it at bucket/key, replacing any prior value.
	Put(ctx context.Context, bucket, key string, v any) error

	// Delete removes bucket/key. Deleting a missing key is not an error.
	Delete(ctx context.Context, bucket, key string) error

	// Clear removes every key in bucket and returns how many were removed.
	Clear(ctx context.Context, bucket string) (int, error)

	// Keys lists the keys in bucket in ascending order.
	Keys(ctx context.Context, bucket string) ([]string, error)

	// Update runs fn against a transactional view. Writes made through
	// the view are committed together when fn returns nil and discarded
	// otherwise.
	Update(ctx context.Context, fn func(tx KV) error) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	// Purpose keeps only events with this exact label.
	Purpose string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls for a single purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls for a single model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
