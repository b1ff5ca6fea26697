// Package skills defines the fixed set of personal-development skills and
// the leveling curve shared by every skill.
package skills

import "github.com/abhisek/arise/internal/apperr"

// Key identifies one of the fixed skill categories.
type Key string

const (
	Communication         Key = "communication"
	Leadership            Key = "leadership"
	Creativity            Key = "creativity"
	Fitness               Key = "fitness"
	Learning              Key = "learning"
	Productivity          Key = "productivity"
	EmotionalIntelligence Key = "emotional_intelligence"
	Financial             Key = "financial"
)

// All returns every skill key in display order.
func All() []Key {
	return []Key{
		Communication,
		Leadership,
		Creativity,
		Fitness,
		Learning,
		Productivity,
		EmotionalIntelligence,
		Financial,
	}
}

// Info holds display metadata for a skill.
type Info struct {
	Key         Key    `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var catalog = map[Key]Info{
	Communication: {
		Key:         Communication,
		Name:        "Communication",
		Description: "Speaking, writing, and interpersonal skills",
		Color:       "#4CAF50",
	},
	Leadership: {
		Key:         Leadership,
		Name:        "Leadership",
		Description: "Team management and decision-making abilities",
		Color:       "#2196F3",
	},
	Creativity: {
		Key:         Creativity,
		Name:        "Creativity",
		Description: "Innovation, artistic expression, and problem-solving",
		Color:       "#9C27B0",
	},
	Fitness: {
		Key:         Fitness,
		Name:        "Fitness",
		Description: "Physical health and exercise routines",
		Color:       "#FF9800",
	},
	Learning: {
		Key:         Learning,
		Name:        "Learning",
		Description: "Knowledge acquisition and skill development",
		Color:       "#607D8B",
	},
	Productivity: {
		Key:         Productivity,
		Name:        "Productivity",
		Description: "Time management and task completion",
		Color:       "#795548",
	},
	EmotionalIntelligence: {
		Key:         EmotionalIntelligence,
		Name:        "Emotional Intelligence",
		Description: "Self-awareness and emotional regulation",
		Color:       "#E91E63",
	},
	Financial: {
		Key:         Financial,
		Name:        "Financial",
		Description: "Money management and financial planning",
		Color:       "#4CAF50",
	},
}

// Lookup returns the catalog entry for a key.
func Lookup(k Key) (Info, bool) {
	info, ok := catalog[k]
	return info, ok
}

// Parse validates a raw string as a skill key.
func Parse(s string) (Key, error) {
	k := Key(s)
	if _, ok := catalog[k]; !ok {
		return "", &apperr.NotFoundError{Kind: "skill", ID: s}
	}
	return k, nil
}

// Catalog returns display metadata for every skill, keyed by skill key.
func Catalog() map[Key]Info {
	out := make(map[Key]Info, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out
}

// DisplayName returns a human-readable label for the key.
func (k Key) DisplayName() string {
	if info, ok := catalog[k]; ok {
		return info.Name
	}
	return string(k)
}

// Valid reports whether k is one of the fixed skill keys.
func (k Key) Valid() bool {
	_, ok := catalog[k]
	return ok
}
