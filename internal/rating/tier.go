package rating

// Tier is a named rating bracket. A rating belongs to the highest tier whose
// Min it reaches.
type Tier struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Min   int    `json:"min"`
}

// tiers is ordered by ascending Min. The first entry has no lower bound.
var tiers = []Tier{
	{Name: "Beginner", Color: "#9E9E9E"},
	{Name: "Intermediate", Color: "#4CAF50", Min: 1000},
	{Name: "Advanced", Color: "#2196F3", Min: 1200},
	{Name: "Expert", Color: "#9C27B0", Min: 1400},
	{Name: "Elite", Color: "#FFC107", Min: 1600},
}

// Tiers returns a copy of the tier table in ascending order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// ComputeTier classifies a rating. It is defined for every integer: values
// below the first cut point are Beginner, values at or above the last are Elite.
func ComputeTier(rating int) Tier {
	for i := len(tiers) - 1; i > 0; i-- {
		if rating >= tiers[i].Min {
			return tiers[i]
		}
	}
	return tiers[0]
}
