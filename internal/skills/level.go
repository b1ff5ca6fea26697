package skills

import "math"

const (
	// BaseThreshold is the XP needed to leave level 1.
	BaseThreshold = 100
	// GrowthFactor is the per-level multiplier on the threshold.
	GrowthFactor = 1.5
)

// XPThreshold returns the XP that must accumulate within the given level
// to advance to the next one: floor(100 * 1.5^(level-1)).
// Levels below 1 are treated as level 1.
func XPThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	v := math.Floor(BaseThreshold * math.Pow(GrowthFactor, float64(level-1)))
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int(v)
}

// Progress returns how far xp is through the given level, in [0, 1).
func Progress(level, xp int) float64 {
	if xp <= 0 {
		return 0
	}
	p := float64(xp) / float64(XPThreshold(level))
	if p > 1 {
		return 1
	}
	return p
}
