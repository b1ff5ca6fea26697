package components

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/arise/internal/engine"
	"github.com/abhisek/arise/internal/ledger"
	"github.com/abhisek/arise/internal/quests"
	"github.com/abhisek/arise/internal/rewards"
	"github.com/abhisek/arise/internal/skills"
	"github.com/abhisek/arise/internal/ui/theme"
)

const nameColumn = 24

func skillName(k skills.Key) string {
	return lipgloss.NewStyle().
		Foreground(theme.SkillColor(k)).
		Width(nameColumn).
		Render(k.DisplayName())
}

// SkillRows renders one progress row per skill in catalog order.
func SkillRows(u *ledger.User, cw int) string {
	var b strings.Builder
	for i, k := range skills.All() {
		st := u.Skills[k]
		meta := theme.Subtitle.Render(fmt.Sprintf(" Lv %-3d %d/%d XP", st.Level, st.XP, skills.XPThreshold(st.Level)))
		bar := NewProgressBar("", skills.Progress(st.Level, st.XP), false, cw-nameColumn-lipgloss.Width(meta))
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(skillName(k) + bar.View() + meta)
	}
	return b.String()
}

// UserStatus renders the full status card for a user.
func UserStatus(u *ledger.User, cw int) string {
	header := theme.Body.Render(fmt.Sprintf("Total XP %d", u.TotalXP)) +
		theme.Subtitle.Render(fmt.Sprintf("   %d journal entries   last active %s",
			len(u.JournalEntries), u.LastActive.Format(time.DateTime)))
	return Card(u.ID, header+"\n\n"+SkillRows(u, cw), cw)
}

// QuestList renders a daily quest set.
func QuestList(set *quests.DailySet, cw int) string {
	var b strings.Builder
	for i, q := range set.Quests {
		mark, style := "[ ]", theme.Pending
		if q.Completed {
			mark, style = "[x]", theme.Done
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s\n    %s  %s",
			style.Render(mark),
			style.Render(q.Title),
			skillName(q.Skill),
			theme.Hint.Render(fmt.Sprintf("+%d XP  id %s", q.XPReward, q.ID)))
	}
	title := fmt.Sprintf("Quests for %s  (%d/%d done)", set.Date, set.CompletedCount(), len(set.Quests))
	return Card(title, b.String(), cw)
}

// RewardList renders earned milestones.
func RewardList(ms []rewards.Milestone, cw int) string {
	if len(ms) == 0 {
		return Card("Rewards", theme.Hint.Render("No milestones yet. Reach level 5 in any skill."), cw)
	}
	var b strings.Builder
	for i, m := range ms {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(Badge(fmt.Sprintf("%-10s", m.Rarity.DisplayName()), theme.RarityColor(m.Rarity)))
		b.WriteString(theme.Body.Render(m.Label))
	}
	return Card("Rewards", b.String(), cw)
}

// EntryResult summarizes a recorded journal entry.
func EntryResult(res *engine.EntryResult, cw int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", theme.LevelUp.Render(fmt.Sprintf("+%d XP", res.XPEarned)))
	if len(res.Analysis) == 0 {
		b.WriteString(theme.Hint.Render("No skill matched; length bonus only."))
	}
	for _, k := range skills.All() {
		conf, ok := res.Analysis[k]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s%s", skillName(k), theme.Subtitle.Render(fmt.Sprintf("%3d%% confidence", conf)))
	}
	for _, k := range res.LeveledUpSkills {
		fmt.Fprintf(&b, "\n%s", theme.LevelUp.Render(fmt.Sprintf("%s reached level %d!", k.DisplayName(), res.User.Skills[k].Level)))
	}
	return Card("Journal entry recorded", b.String(), cw)
}

// QuestCompleted summarizes a completed quest.
func QuestCompleted(res *engine.QuestResult, cw int) string {
	st := res.User.Skills[res.Quest.Skill]
	body := theme.Done.Render(res.Quest.Title) + "\n" +
		theme.LevelUp.Render(fmt.Sprintf("+%d XP", res.Quest.XPReward)) + "  " + skillName(res.Quest.Skill)
	if res.LeveledUp {
		body += "\n" + theme.LevelUp.Render(fmt.Sprintf("%s reached level %d!", res.Quest.Skill.DisplayName(), st.Level))
	}
	return Card("Quest complete", body, cw)
}

// StatsTable renders system statistics.
func StatsTable(st *engine.Stats, cw int) string {
	reset := "never"
	if st.LastQuestReset != nil {
		reset = st.LastQuestReset.Local().Format(time.DateTime)
	}
	rows := [][2]string{
		{"Users", fmt.Sprint(st.TotalUsers)},
		{"Journal entries", fmt.Sprint(st.TotalEntries)},
		{"Last quest reset", reset},
		{"Version", st.Version},
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(theme.Subtitle.Width(nameColumn).Render(r[0]) + theme.Body.Render(r[1]))
	}
	return Card("Arise", b.String(), cw)
}
