package classify

import (
	"context"
	"strings"

	"github.com/abhisek/arise/internal/skills"
)

// KeywordConfidence is the confidence added per matched keyword.
const KeywordConfidence = 25

var defaultKeywords = map[skills.Key][]string{
	skills.Communication: {
		"talk", "speak", "conversation", "discuss", "presentation", "meeting",
		"email", "message", "write", "writing", "communicate", "explain",
	},
	skills.Leadership: {
		"lead", "manage", "team", "project", "decision", "mentor", "guide",
		"initiative", "responsibility", "coordinate", "organize",
	},
	skills.Creativity: {
		"create", "design", "art", "draw", "paint", "write", "compose",
		"innovate", "brainstorm", "idea", "creative", "imagine",
	},
	skills.Fitness: {
		"exercise", "workout", "run", "gym", "sport", "train", "fitness",
		"health", "nutrition", "diet", "strength", "cardio",
	},
	skills.Learning: {
		"learn", "study", "read", "research", "course", "education",
		"knowledge", "skill", "practice", "understand", "explore",
	},
	skills.Productivity: {
		"complete", "task", "finish", "organize", "plan", "schedule",
		"efficient", "productive", "work", "focus", "deadline",
	},
	skills.EmotionalIntelligence: {
		"feel", "emotion", "mindful", "meditate", "reflect", "empathy",
		"relationship", "understand", "aware", "calm", "stress",
	},
	skills.Financial: {
		"money", "budget", "save", "invest", "finance", "expense",
		"income", "spend", "cost", "financial", "economy",
	},
}

// KeywordClassifier scores text by case-insensitive substring matches.
// Each matched keyword adds 25 confidence, capped at 100.
type KeywordClassifier struct {
	keywords map[skills.Key][]string
}

// NewKeywordClassifier returns a classifier over the built-in keyword lists.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{keywords: defaultKeywords}
}

func (c *KeywordClassifier) Name() string { return "keyword" }

// Classify never fails.
func (c *KeywordClassifier) Classify(_ context.Context, text string) (Analysis, error) {
	lower := strings.ToLower(text)
	out := Analysis{}
	for _, k := range skills.All() {
		matches := 0
		for _, kw := range c.keywords[k] {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		if matches > 0 {
			out[k] = min(100, matches*KeywordConfidence)
		}
	}
	return out, nil
}
