// Package classify maps journal text to per-skill confidence scores.
package classify

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/skills"
)

// Text length bounds, in characters after trimming.
const (
	MinTextLength = 10
	MaxTextLength = 5000
)

// Analysis maps a skill to a confidence in 0..100.
type Analysis map[skills.Key]int

// Classifier scores text against the skill categories.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, text string) (Analysis, error)
}

// Descriptions guide model-based classifiers toward each category.
var Descriptions = map[skills.Key]string{
	skills.Communication:         "speaking, writing, interpersonal skills, conversation, public speaking",
	skills.Leadership:            "team management, decision making, mentoring, taking initiative, project management",
	skills.Creativity:            "artistic expression, innovation, problem solving, brainstorming, design",
	skills.Fitness:               "exercise, physical health, workout, sports, nutrition, wellness",
	skills.Learning:              "studying, reading, skill development, education, knowledge acquisition",
	skills.Productivity:          "time management, task completion, organization, planning, efficiency",
	skills.EmotionalIntelligence: "self awareness, emotional regulation, empathy, mindfulness, relationships",
	skills.Financial:             "money management, budgeting, investing, saving, financial planning",
}

// Description returns the classifier hint for k.
func Description(k skills.Key) string {
	if d, ok := Descriptions[k]; ok {
		return d
	}
	return "General skill development"
}

// ValidateText checks that text is usable as a journal entry.
func ValidateText(text string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	switch {
	case n < MinTextLength:
		return &apperr.ValidationError{Field: "content", Reason: "must be at least 10 characters"}
	case n > MaxTextLength:
		return &apperr.ValidationError{Field: "content", Reason: "must be at most 5000 characters"}
	}
	return nil
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
