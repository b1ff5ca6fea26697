package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/skills"
)

// Award describes the outcome of one ApplyXP call.
type Award struct {
	Skill        skills.Key
	Amount       int
	State        SkillState
	LevelsGained int
}

// LeveledUp reports whether the award crossed at least one threshold.
func (a Award) LeveledUp() bool { return a.LevelsGained > 0 }

// ApplyXP adds amount to the skill's XP and lifetime total, then consumes
// thresholds until xp < XPThreshold(level). A single award may cross several
// levels; every crossing is counted.
func (u *User) ApplyXP(skill skills.Key, amount int, now time.Time) (Award, error) {
	st, ok := u.Skills[skill]
	if !ok {
		return Award{}, &apperr.NotFoundError{Kind: "skill", ID: string(skill)}
	}
	if amount < 0 {
		return Award{}, &apperr.ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("must be non-negative, got %d", amount),
		}
	}
	if amount == 0 {
		return Award{Skill: skill, State: st}, nil
	}
	// TotalXP >= XP, so this bounds both counters.
	if st.TotalXP > math.MaxInt-amount {
		return Award{}, &apperr.ValidationError{
			Field:  "amount",
			Reason: fmt.Sprintf("%d would overflow the %s total", amount, skill),
		}
	}

	st.XP += amount
	st.TotalXP += amount

	gained := 0
	for st.XP >= skills.XPThreshold(st.Level) {
		st.XP -= skills.XPThreshold(st.Level)
		st.Level++
		gained++
	}
	if gained > 0 {
		st.LastLevelUp = now
	}

	u.Skills[skill] = st
	u.LastActive = now

	return Award{Skill: skill, Amount: amount, State: st, LevelsGained: gained}, nil
}

// CheckInvariants verifies every skill satisfies 1 <= level and
// 0 <= xp < XPThreshold(level), and that all fixed skills are present.
func (u *User) CheckInvariants() error {
	for _, k := range skills.All() {
		st, ok := u.Skills[k]
		if !ok {
			return &apperr.InvariantViolationError{Detail: fmt.Sprintf("user %s missing skill %s", u.ID, k)}
		}
		if st.Level < 1 {
			return &apperr.InvariantViolationError{Detail: fmt.Sprintf("%s level %d < 1", k, st.Level)}
		}
		if st.XP < 0 || st.XP >= skills.XPThreshold(st.Level) {
			return &apperr.InvariantViolationError{
				Detail: fmt.Sprintf("%s xp %d outside [0, %d) at level %d", k, st.XP, skills.XPThreshold(st.Level), st.Level),
			}
		}
	}
	return nil
}
