// Package rewards derives milestone rewards from skill levels. Nothing here
// is persisted; results are recomputed from the ledger on every read.
package rewards

import (
	"fmt"

	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/skills"
)

// Interval is the level spacing between milestones.
const Interval = 5

// TypeMilestone tags milestone reward descriptors.
const TypeMilestone = "milestone"

// Milestone is a reward descriptor for a skill that crossed a multiple of 5.
type Milestone struct {
	Skill  skills.Key `json:"skill"`
	Level  int        `json:"level"`
	Label  string     `json:"reward"`
	Type   string     `json:"type"`
	Rarity Rarity     `json:"rarity"`
	Earned bool       `json:"earned"`
}

// MilestoneLevel returns floor(level/5)*5, or 0 below the first milestone.
func MilestoneLevel(level int) int {
	if level < Interval {
		return 0
	}
	return level / Interval * Interval
}

// Derive returns one milestone per skill at level >= 5, in catalog order.
// It reads the user and never mutates it.
func Derive(u *ledger.User) []Milestone {
	var out []Milestone
	for _, k := range skills.All() {
		st, ok := u.Skills[k]
		if !ok {
			continue
		}
		ml := MilestoneLevel(st.Level)
		if ml == 0 {
			continue
		}
		out = append(out, Milestone{
			Skill:  k,
			Level:  ml,
			Label:  fmt.Sprintf("Level %d %s Master!", ml, k.DisplayName()),
			Type:   TypeMilestone,
			Rarity: MilestoneRarity(ml),
			Earned: st.Level >= ml,
		})
	}
	return out
}
