// Package ledger holds the per-user progression record and the Skill Ledger
// operation that turns XP awards into levels.
package ledger

import (
	"time"

	"github.com/abhisek/arise/internal/skills"
)

// SkillState is the progression of one skill.
type SkillState struct {
	Level       int       `json:"level"`
	XP          int       `json:"xp"`      // progress within the current level
	TotalXP     int       `json:"totalXP"` // lifetime XP awarded to this skill
	LastLevelUp time.Time `json:"lastLevelUp"`
}

// EntryType records how a journal entry was captured.
type EntryType string

const (
	EntryText  EntryType = "text"
	EntryAudio EntryType = "audio"
)

// ParseEntryType maps a raw type to an EntryType, defaulting to text.
func ParseEntryType(s string) EntryType {
	if EntryType(s) == EntryAudio {
		return EntryAudio
	}
	return EntryText
}

// JournalEntry is an immutable record of one submitted entry.
type JournalEntry struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	Type      EntryType          `json:"type"`
	Analysis  map[skills.Key]int `json:"analysis"`
	XPEarned  int                `json:"xpEarned"`
	Timestamp time.Time          `json:"timestamp"`
}

// User owns every skill from creation plus the journal history.
type User struct {
	ID     string                    `json:"id"`
	Skills map[skills.Key]SkillState `json:"skills"`
	// TotalXP accumulates every award independently of the skills'
	// TotalXP; entry base XP is counted here but not on any skill.
	TotalXP        int            `json:"totalXP"`
	Level          int            `json:"level"`
	JournalEntries []JournalEntry `json:"journalEntries"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastActive     time.Time      `json:"lastActive"`
}

// NewUser creates a user with every skill at level 1.
func NewUser(id string, now time.Time) *User {
	u := &User{
		ID:             id,
		Skills:         make(map[skills.Key]SkillState, len(skills.All())),
		Level:          1,
		JournalEntries: []JournalEntry{},
		CreatedAt:      now,
		LastActive:     now,
	}
	for _, k := range skills.All() {
		u.Skills[k] = SkillState{Level: 1, LastLevelUp: now}
	}
	return u
}

// Clone returns a deep copy so callers can mutate without touching the
// original until they decide to persist.
func (u *User) Clone() *User {
	c := *u
	c.Skills = make(map[skills.Key]SkillState, len(u.Skills))
	for k, v := range u.Skills {
		c.Skills[k] = v
	}
	c.JournalEntries = make([]JournalEntry, len(u.JournalEntries))
	copy(c.JournalEntries, u.JournalEntries)
	return &c
}

// AddTotalXP adds to the user's independent lifetime counter.
func (u *User) AddTotalXP(amount int, now time.Time) {
	if amount <= 0 {
		return
	}
	u.TotalXP += amount
	u.LastActive = now
}

// AppendEntry appends a journal entry in chronological order.
func (u *User) AppendEntry(e JournalEntry, now time.Time) {
	u.JournalEntries = append(u.JournalEntries, e)
	u.LastActive = now
}

// EntriesNewestFirst returns a page of journal entries, newest first, the
// total count, and whether more entries follow the page.
func (u *User) EntriesNewestFirst(limit, offset int) ([]JournalEntry, int, bool) {
	total := len(u.JournalEntries)
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	out := make([]JournalEntry, 0, limit)
	for i := total - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, u.JournalEntries[i])
	}
	return out, total, total > offset+limit
}
