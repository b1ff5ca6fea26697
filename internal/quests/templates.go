package quests

import "github.com/abhisek/arise/internal/skills"

// defaultPools holds three quest templates per skill.
var defaultPools = map[skills.Key][]string{
	skills.Communication: {
		"Have a meaningful conversation with someone new",
		"Practice public speaking for 5 minutes",
		"Write a thoughtful message to a friend",
	},
	skills.Leadership: {
		"Take initiative on a group project",
		"Mentor someone for 15 minutes",
		"Make a difficult decision and explain your reasoning",
	},
	skills.Creativity: {
		"Create something artistic (draw, write, compose)",
		"Brainstorm 10 new ideas",
		"Try a new creative hobby",
	},
	skills.Fitness: {
		"Exercise for 30 minutes",
		"Try a new workout routine",
		"Take a long walk in nature",
	},
	skills.Learning: {
		"Read for 30 minutes",
		"Learn something new online",
		"Practice a skill you want to improve",
	},
	skills.Productivity: {
		"Complete 3 important tasks",
		"Organize your workspace",
		"Create a detailed plan for tomorrow",
	},
	skills.EmotionalIntelligence: {
		"Practice mindfulness for 10 minutes",
		"Reflect on your emotions throughout the day",
		"Show empathy to someone in need",
	},
	skills.Financial: {
		"Review your budget",
		"Research an investment opportunity",
		"Save money on a purchase",
	},
}

// DefaultPools returns a copy of the built-in template pools.
func DefaultPools() map[skills.Key][]string {
	out := make(map[skills.Key][]string, len(defaultPools))
	for k, v := range defaultPools {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// FallbackTemplate is used when a skill has no template pool.
func FallbackTemplate(k skills.Key) string {
	return "Complete a task related to " + k.DisplayName()
}
