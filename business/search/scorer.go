package search

import (
	"strings"

	"elaraMarket/business/catalog"
	"elaraMarket/domain"
)

// Weights for the relevance bands. The absolute values are tunable but the
// relative ordering is contractual: exact name match > per-token name match >
// brand match > description match; popularity only breaks ties between text
// matches and preference bonuses are additive on top.
type Weights struct {
	ExactName        float64
	NameToken        float64
	Brand            float64
	Description      float64
	PopularityFactor float64
	PrefCategory     float64
	PrefPrice        float64
}

const (
	defaultExactName        = 100.0
	defaultNameToken        = 40.0
	defaultBrand            = 30.0
	defaultDescription      = 20.0
	defaultPopularityFactor = 0.05
	defaultPrefCategory     = 15.0
	defaultPrefPrice        = 10.0
)

func DefaultWeights() Weights {
	return Weights{
		ExactName:        defaultExactName,
		NameToken:        defaultNameToken,
		Brand:            defaultBrand,
		Description:      defaultDescription,
		PopularityFactor: defaultPopularityFactor,
		PrefCategory:     defaultPrefCategory,
		PrefPrice:        defaultPrefPrice,
	}
}

// Score computes the relevance of a product for a normalized (lowercased,
// trimmed) query. Deterministic and side-effect free; 0 means "not a match"
// and excludes the product from results.
func (w Weights) Score(p domain.Product, query string, queryTokens []string, prefs *domain.Preferences) float64 {
	score := 0.0

	name := strings.ToLower(p.Name)
	if strings.Contains(name, query) {
		score += w.ExactName
	}

	// additive per-token overlap rewards multi-token matches
	for _, tok := range queryTokens {
		if containsToken(p.SearchTokens, tok) {
			score += w.NameToken
		}
	}

	if p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), query) {
		score += w.Brand
	}

	if strings.Contains(strings.ToLower(p.Description), query) {
		score += w.Description
	}

	if score == 0 {
		return 0
	}

	score += p.PopularityScore * w.PopularityFactor

	if prefs != nil {
		for _, cat := range prefs.PreferredCategories {
			if p.CategoryID == cat {
				score += w.PrefCategory
				break
			}
		}
		if prefs.MaxPrice > 0 && p.Price >= prefs.MinPrice && p.Price <= prefs.MaxPrice {
			score += w.PrefPrice
		}
	}

	return score
}

// NormalizeQuery lowercases and trims a raw query and returns it with its
// token split, using the same tokenizer as the catalog index.
func NormalizeQuery(raw string) (string, []string) {
	query := strings.ToLower(strings.TrimSpace(raw))
	return query, catalog.Tokenize(query)
}

func containsToken(tokens []string, tok string) bool {
	for _, t := range tokens {
		if t == tok {
			return true
		}
	}
	return false
}
