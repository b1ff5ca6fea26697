package rewards

// Rarity represents how hard a milestone was to reach.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// MilestoneRarity returns the rarity for a milestone level.
func MilestoneRarity(level int) Rarity {
	switch {
	case level >= 20:
		return RarityLegendary
	case level >= 15:
		return RarityEpic
	case level >= 10:
		return RarityRare
	default:
		return RarityCommon
	}
}
