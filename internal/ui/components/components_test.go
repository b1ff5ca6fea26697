package components

import (
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/arise/internal/engine"
	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/quests"
	"github.com/abhisek/arise/internal/rewards"
	"github.com/abhisek/arise/internal/skills"
)

func TestProgressBarWidth(t *testing.T) {
	for _, pct := range []float64{0, 0.5, 1, 1.7, -1} {
		got := NewProgressBar("", pct, false, 20).View()
		if w := lipgloss.Width(got); w != 20 {
			t.Errorf("percent %v: width = %d, want 20", pct, w)
		}
	}
}

func TestContentWidthClamps(t *testing.T) {
	tests := []struct{ in, want int }{
		{10, 30},
		{80, 72},
		{60, 54},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestUserStatusListsEverySkill(t *testing.T) {
	u := ledger.NewUser("alice", time.Now())
	out := UserStatus(u, 60)
	for _, k := range skills.All() {
		if !strings.Contains(out, k.DisplayName()) {
			t.Errorf("status missing %s", k.DisplayName())
		}
	}
	if !strings.Contains(out, "alice") {
		t.Error("status missing user id")
	}
}

func TestQuestListMarksCompleted(t *testing.T) {
	set := &quests.DailySet{Date: "2024-01-02", Quests: []quests.Quest{
		{ID: "q1", Title: "Go for a run", Skill: skills.Fitness, XPReward: 50, Completed: true},
		{ID: "q2", Title: "Read a chapter", Skill: skills.Learning, XPReward: 50},
	}}
	out := QuestList(set, 60)
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "[ ]") {
		t.Errorf("quest marks missing:\n%s", out)
	}
	if !strings.Contains(out, "(1/2 done)") {
		t.Errorf("completion count missing:\n%s", out)
	}
}

func TestRewardList(t *testing.T) {
	if out := RewardList(nil, 60); !strings.Contains(out, "No milestones") {
		t.Errorf("empty rewards:\n%s", out)
	}
	out := RewardList([]rewards.Milestone{{
		Skill: skills.Creativity, Level: 10, Label: "Level 10 Creativity Master!", Rarity: rewards.RarityRare,
	}}, 60)
	if !strings.Contains(out, "Rare") || !strings.Contains(out, "Level 10 Creativity Master!") {
		t.Errorf("reward row missing:\n%s", out)
	}
}

func TestEntryResultShowsLevelUps(t *testing.T) {
	u := ledger.NewUser("alice", time.Now())
	st := u.Skills[skills.Fitness]
	st.Level = 2
	u.Skills[skills.Fitness] = st
	out := EntryResult(&engine.EntryResult{
		Analysis:        map[skills.Key]int{skills.Fitness: 90},
		XPEarned:        120,
		User:            u,
		LeveledUpSkills: []skills.Key{skills.Fitness},
	}, 60)
	if !strings.Contains(out, "+120 XP") || !strings.Contains(out, "Fitness reached level 2!") {
		t.Errorf("entry summary:\n%s", out)
	}
}

func TestTableRendersCells(t *testing.T) {
	out := Table([]string{"Model", "Calls"}, [][]string{
		{"gpt-4o-mini", "12"},
		{"claude-haiku-4-5", "3"},
	}, 1)
	for _, want := range []string{"Model", "Calls", "gpt-4o-mini", "claude-haiku-4-5", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines != 6 {
		t.Errorf("table has %d lines, want 6:\n%s", lines, out)
	}
}
