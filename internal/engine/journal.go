package engine

import (
	"context"
	"strings"

	"github.com/abhisek/arise/internal/classify"
	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/scoring"
	"github.com/abhisek/arise/internal/skills"
	"github.com/abhisek/arise/internal/store"
)

// EntryResult is the outcome of recording a journal entry.
type EntryResult struct {
	Entry           ledger.JournalEntry `json:"entry"`
	Analysis        map[skills.Key]int  `json:"analysis"`
	XPEarned        int                 `json:"xpEarned"`
	User            *ledger.User        `json:"user"`
	LeveledUpSkills []skills.Key        `json:"leveledUpSkills"`
}

// RecordJournalEntry scores content against analysis, applies the
// per-skill awards, credits the user's total and appends the entry. All
// changes are persisted together or not at all.
func (e *Engine) RecordJournalEntry(ctx context.Context, userID, content string, entryType ledger.EntryType, analysis map[skills.Key]int) (*EntryResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if analysis == nil {
		analysis = map[skills.Key]int{}
	}

	unlock := e.lockUser(userID)
	defer unlock()

	u, err := e.loadUser(ctx, e.kv, userID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	before := make(map[skills.Key]int, len(u.Skills))
	for k, st := range u.Skills {
		before[k] = st.Level
	}
	result := scoring.Score(content, analysis)
	leveled, err := scoring.Apply(u, result, now)
	if err != nil {
		return nil, err
	}
	if err := u.CheckInvariants(); err != nil {
		return nil, err
	}
	u.AddTotalXP(result.XPEarned, now)

	entry := ledger.JournalEntry{
		ID:        e.newID(),
		Content:   content,
		Type:      entryType,
		Analysis:  analysis,
		XPEarned:  result.XPEarned,
		Timestamp: now,
	}
	u.AppendEntry(entry, now)

	if err := e.kv.Put(ctx, store.BucketUsers, userID, u); err != nil {
		return nil, err
	}

	e.metrics.EntryRecorded(string(entryType))
	for _, k := range skills.All() {
		xp, ok := result.PerSkill[k]
		if !ok {
			continue
		}
		e.recordAward(userID, k, "entry", xp, u.Skills[k].Level-before[k])
	}
	e.log.Debug().
		Str("user", userID).
		Str("entry", entry.ID).
		Int("xp", result.XPEarned).
		Msg("journal entry recorded")

	if leveled == nil {
		leveled = []skills.Key{}
	}
	return &EntryResult{
		Entry:           entry,
		Analysis:        analysis,
		XPEarned:        result.XPEarned,
		User:            u,
		LeveledUpSkills: leveled,
	}, nil
}

// SubmitEntry validates content, classifies it outside any user lock, and
// records it. Content is stored and scored as submitted; only the
// classifier sees it trimmed. Classifier failure or timeout degrades to an empty analysis,
// so the entry earns length-based XP only.
func (e *Engine) SubmitEntry(ctx context.Context, userID, content string, entryType ledger.EntryType) (*EntryResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := classify.ValidateText(content); err != nil {
		return nil, err
	}
	if _, err := e.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	analysis := e.classify(ctx, strings.TrimSpace(content))
	return e.RecordJournalEntry(ctx, userID, content, entryType, analysis)
}

func (e *Engine) classify(ctx context.Context, text string) map[skills.Key]int {
	if e.classifier == nil {
		return map[skills.Key]int{}
	}
	if e.classifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.classifyTimeout)
		defer cancel()
	}
	out, err := e.classifier.Classify(ctx, text)
	if err != nil {
		e.metrics.ClassifierFailed(e.classifier.Name())
		e.log.Warn().Err(err).Str("classifier", e.classifier.Name()).Msg("classification failed, using empty analysis")
		return map[skills.Key]int{}
	}
	if out == nil {
		return map[skills.Key]int{}
	}
	return out
}

// EntryPage is one page of a user's journal, newest first.
type EntryPage struct {
	Entries []ledger.JournalEntry `json:"entries"`
	Total   int                   `json:"total"`
	HasMore bool                  `json:"hasMore"`
}

// ListEntries pages through an existing user's journal, newest first.
func (e *Engine) ListEntries(ctx context.Context, userID string, limit, offset int) (*EntryPage, error) {
	u, err := e.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, total, more := u.EntriesNewestFirst(limit, offset)
	return &EntryPage{Entries: entries, Total: total, HasMore: more}, nil
}
