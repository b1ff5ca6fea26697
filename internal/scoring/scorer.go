// Package scoring converts classifier confidences and entry length into
// per-skill XP awards.
package scoring

import (
	"time"
	"unicode/utf8"

	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/skills"
)

const (
	// CharsPerXP is how many characters of entry text earn one base XP.
	CharsPerXP = 10
	// MaxBaseXP caps the length-based reward.
	MaxBaseXP = 100
	// ConfidenceThreshold is the confidence a skill must exceed to earn XP.
	ConfidenceThreshold = 30
)

// Result is the XP allocation for one entry.
type Result struct {
	BaseXP   int
	PerSkill map[skills.Key]int
	XPEarned int
}

// BaseXP returns min(100, floor(chars/10)).
func BaseXP(text string) int {
	return min(MaxBaseXP, utf8.RuneCountInString(text)/CharsPerXP)
}

// SkillXP returns floor(confidence/100 * base) using integer arithmetic.
func SkillXP(confidence, base int) int {
	confidence = max(0, min(100, confidence))
	return confidence * base / 100
}

// Score allocates XP for an entry. Skills with confidence above the
// threshold each receive a share of the base; keys outside the fixed skill
// set are ignored.
func Score(text string, analysis map[skills.Key]int) Result {
	base := BaseXP(text)
	per := make(map[skills.Key]int)
	for _, k := range skills.All() {
		conf, ok := analysis[k]
		if !ok || conf <= ConfidenceThreshold {
			continue
		}
		per[k] = SkillXP(conf, base)
	}
	return Result{
		BaseXP:   base,
		PerSkill: per,
		XPEarned: TotalAwarded(base, per),
	}
}

// TotalAwarded is the XP credited to the user's lifetime counter for an
// entry. The base is added once on top of the per-skill shares it seeded,
// so the user total exceeds the sum of skill totals by the base.
func TotalAwarded(base int, perSkill map[skills.Key]int) int {
	total := base
	for _, xp := range perSkill {
		total += xp
	}
	return total
}

// Apply routes each per-skill award through the Skill Ledger in catalog
// order and returns the skills that leveled up.
func Apply(u *ledger.User, r Result, now time.Time) ([]skills.Key, error) {
	var leveled []skills.Key
	for _, k := range skills.All() {
		xp, ok := r.PerSkill[k]
		if !ok {
			continue
		}
		award, err := u.ApplyXP(k, xp, now)
		if err != nil {
			return nil, err
		}
		if award.LeveledUp() {
			leveled = append(leveled, k)
		}
	}
	return leveled, nil
}
