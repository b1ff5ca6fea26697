package quests

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/skills"
)

// RandSource picks a uniform integer in [0, n). *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Generator produces daily quest sets from skill-tagged templates.
type Generator struct {
	mu    sync.Mutex // guards rng; *rand.Rand is not safe for concurrent use
	rng   RandSource
	newID func() string
	pools map[skills.Key][]string
}

// NewGenerator creates a generator. A nil rng uses the process-wide source;
// a nil newID uses random UUIDs.
func NewGenerator(rng RandSource, newID func() string) *Generator {
	if rng == nil {
		rng = globalRand{}
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Generator{rng: rng, newID: newID, pools: DefaultPools()}
}

// WithPools replaces the template pools. Skills missing from pools get the
// fallback template.
func (g *Generator) WithPools(pools map[skills.Key][]string) *Generator {
	g.pools = pools
	return g
}

// Generate builds PerDay quests for date. Each slot independently picks a
// uniform skill from skillKeys (repeats allowed) and a uniform template from
// that skill's pool.
func (g *Generator) Generate(skillKeys []skills.Key, date string) (*DailySet, error) {
	if len(skillKeys) == 0 {
		return nil, &apperr.ValidationError{Field: "skills", Reason: "at least one skill is required"}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	set := &DailySet{Date: date, Quests: make([]Quest, 0, PerDay)}
	for range PerDay {
		skill := skillKeys[g.rng.IntN(len(skillKeys))]

		title := FallbackTemplate(skill)
		if pool := g.pools[skill]; len(pool) > 0 {
			title = pool[g.rng.IntN(len(pool))]
		}

		set.Quests = append(set.Quests, Quest{
			ID:       g.newID(),
			Title:    title,
			Skill:    skill,
			XPReward: XPReward,
		})
	}
	return set, nil
}
