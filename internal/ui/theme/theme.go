package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/arise/internal/rewards"
	"github.com/abhisek/arise/internal/skills"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Gold      = lipgloss.Color("#FACC15") // Level-up highlight
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Done = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Pending = lipgloss.NewStyle().
		Foreground(Text)

	LevelUp = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
)

// SkillColor returns the catalog color for a skill, or Text when unknown.
func SkillColor(k skills.Key) color.Color {
	if info, ok := skills.Lookup(k); ok && info.Color != "" {
		return lipgloss.Color(info.Color)
	}
	return Text
}

// RarityColor maps a milestone rarity to a palette color.
func RarityColor(r rewards.Rarity) color.Color {
	switch r {
	case rewards.RarityCommon:
		return Text
	case rewards.RarityRare:
		return Secondary
	case rewards.RarityEpic:
		return Primary
	case rewards.RarityLegendary:
		return Accent
	default:
		return Text
	}
}
