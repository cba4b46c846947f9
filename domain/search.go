package domain

// SearchFilters restrict the candidate set before scoring.
type SearchFilters struct {
	CategoryID uint64
	MinPrice   float64
	MaxPrice   float64
}

// Preferences are caller-supplied personalization hints. A product whose
// category is in PreferredCategories, or whose price falls inside the range,
// receives an additive bonus during scoring.
type Preferences struct {
	PreferredCategories []uint64
	MinPrice            float64
	MaxPrice            float64
}

// Recommendation modes exposed to the web layer.
const (
	ModePersonalized     = "personalized"
	ModeTrending         = "trending"
	ModeSimilar          = "similar"
	ModeFrequentlyBought = "frequently_bought"
)
