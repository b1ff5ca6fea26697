// Package quests generates the daily quest set and tracks completion.
package quests

import (
	"time"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/skills"
)

const (
	// PerDay is the number of quests issued per calendar day.
	PerDay = 3
	// XPReward is the fixed reward for completing any quest.
	XPReward = 50
	// DateLayout is the calendar-date key of a quest set.
	DateLayout = "2006-01-02"
)

// Quest is a skill-tagged daily task.
type Quest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Skill       skills.Key `json:"skill"`
	XPReward    int        `json:"xpReward"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// DailySet is the quest set issued to one user for one calendar date.
type DailySet struct {
	Date   string  `json:"date"`
	Quests []Quest `json:"quests"`
}

// DateKey returns the calendar date of t in loc, formatted as a set key.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// ValidFor reports whether the set was issued on the given date.
func (s *DailySet) ValidFor(date string) bool {
	return s != nil && s.Date == date
}

// Clone returns a deep copy of the set.
func (s *DailySet) Clone() *DailySet {
	c := &DailySet{Date: s.Date, Quests: make([]Quest, len(s.Quests))}
	for i, q := range s.Quests {
		if q.CompletedAt != nil {
			at := *q.CompletedAt
			q.CompletedAt = &at
		}
		c.Quests[i] = q
	}
	return c
}

// Find returns the quest with the given id.
func (s *DailySet) Find(questID string) (Quest, bool) {
	for _, q := range s.Quests {
		if q.ID == questID {
			return q, true
		}
	}
	return Quest{}, false
}

// Complete marks a quest completed. A quest transitions exactly once:
// unknown ids and already-completed quests are rejected with
// *apperr.NotFoundError and the set is left unchanged.
func (s *DailySet) Complete(questID string, now time.Time) (Quest, error) {
	for i := range s.Quests {
		q := &s.Quests[i]
		if q.ID != questID {
			continue
		}
		if q.Completed {
			return Quest{}, &apperr.NotFoundError{Kind: "quest", ID: questID, Reason: "already completed"}
		}
		at := now
		q.Completed = true
		q.CompletedAt = &at
		return *q, nil
	}
	return Quest{}, &apperr.NotFoundError{Kind: "quest", ID: questID}
}

// CompletedCount returns how many quests in the set are done.
func (s *DailySet) CompletedCount() int {
	n := 0
	for _, q := range s.Quests {
		if q.Completed {
			n++
		}
	}
	return n
}
