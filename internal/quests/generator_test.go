package quests

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/abhisek/arise/internal/apperr"
	"github.com/abhisek/arise/internal/skills"
)

// scriptedRand returns a fixed sequence of picks, each reduced modulo n.
type scriptedRand struct {
	picks []int
	i     int
}

func (s *scriptedRand) IntN(n int) int {
	v := s.picks[s.i%len(s.picks)]
	s.i++
	return v % n
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("q-%d", n)
	}
}

func TestGenerate_ScriptedPicks(t *testing.T) {
	// slot 1: skill 3 (fitness), template 0
	// slot 2: skill 3 (fitness), template 2
	// slot 3: skill 7 (financial), template 1
	rng := &scriptedRand{picks: []int{3, 0, 3, 2, 7, 1}}
	g := NewGenerator(rng, sequentialIDs())

	set, err := g.Generate(skills.All(), "2026-10-17")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := []Quest{
		{ID: "q-1", Title: "Exercise for 30 minutes", Skill: skills.Fitness, XPReward: 50},
		{ID: "q-2", Title: "Take a long walk in nature", Skill: skills.Fitness, XPReward: 50},
		{ID: "q-3", Title: "Research an investment opportunity", Skill: skills.Financial, XPReward: 50},
	}
	if set.Date != "2026-10-17" {
		t.Errorf("Date = %q", set.Date)
	}
	if len(set.Quests) != len(want) {
		t.Fatalf("got %d quests, want %d", len(set.Quests), len(want))
	}
	for i, q := range set.Quests {
		if q != want[i] {
			t.Errorf("quest[%d] = %+v, want %+v", i, q, want[i])
		}
	}
}

func TestGenerate_SeededInvariants(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewPCG(1, 2)), nil)
	pools := DefaultPools()

	for day := 0; day < 200; day++ {
		set, err := g.Generate(skills.All(), "2026-01-01")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(set.Quests) != PerDay {
			t.Fatalf("got %d quests, want %d", len(set.Quests), PerDay)
		}
		seen := map[string]bool{}
		for _, q := range set.Quests {
			if q.XPReward != XPReward || q.Completed || q.CompletedAt != nil {
				t.Errorf("quest not freshly created: %+v", q)
			}
			if !slices.Contains(pools[q.Skill], q.Title) {
				t.Errorf("title %q not in %s pool", q.Title, q.Skill)
			}
			if seen[q.ID] {
				t.Errorf("duplicate quest id %s", q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestGenerate_SameSeedSameSet(t *testing.T) {
	a, _ := NewGenerator(rand.New(rand.NewPCG(42, 42)), sequentialIDs()).Generate(skills.All(), "d")
	b, _ := NewGenerator(rand.New(rand.NewPCG(42, 42)), sequentialIDs()).Generate(skills.All(), "d")
	for i := range a.Quests {
		if a.Quests[i] != b.Quests[i] {
			t.Errorf("quest[%d] differs: %+v vs %+v", i, a.Quests[i], b.Quests[i])
		}
	}
}

func TestGenerate_FallbackTemplate(t *testing.T) {
	g := NewGenerator(&scriptedRand{picks: []int{0}}, sequentialIDs()).
		WithPools(map[skills.Key][]string{})

	set, err := g.Generate([]skills.Key{skills.EmotionalIntelligence}, "d")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, q := range set.Quests {
		if q.Title != "Complete a task related to Emotional Intelligence" {
			t.Errorf("title = %q, want fallback", q.Title)
		}
	}
}

func TestGenerate_EmptySkillSet(t *testing.T) {
	_, err := NewGenerator(nil, nil).Generate(nil, "d")
	if !apperr.IsValidation(err) {
		t.Errorf("err = %v, want ValidationError", err)
	}
}

func TestDefaultPools_ThreePerSkill(t *testing.T) {
	pools := DefaultPools()
	for _, k := range skills.All() {
		if len(pools[k]) != 3 {
			t.Errorf("skill %s has %d templates, want 3", k, len(pools[k]))
		}
	}
}
