package engine

import (
	"context"
	"time"

	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/store"
)

// Stats summarizes the whole store.
type Stats struct {
	TotalUsers     int        `json:"totalUsers"`
	TotalEntries   int        `json:"totalEntries"`
	LastQuestReset *time.Time `json:"lastQuestReset"`
	Version        string     `json:"version"`
}

// Stats counts users and journal entries and reports the last reset.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	ids, err := e.kv.Keys(ctx, store.BucketUsers)
	if err != nil {
		return nil, err
	}

	st := &Stats{TotalUsers: len(ids), Version: e.version}
	for _, id := range ids {
		var u ledger.User
		ok, err := e.kv.Get(ctx, store.BucketUsers, id, &u)
		if err != nil {
			return nil, err
		}
		if ok {
			st.TotalEntries += len(u.JournalEntries)
		}
	}

	var raw string
	ok, err := e.kv.Get(ctx, store.BucketSystem, store.KeyLastQuestReset, &raw)
	if err != nil {
		return nil, err
	}
	if ok {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			st.LastQuestReset = &t
		}
	}
	return st, nil
}
