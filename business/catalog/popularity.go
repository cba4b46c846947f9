package catalog

import (
	"math"
	"strings"

	"elaraMarket/domain"
)

// Brands that get the recognition boost in the popularity blend.
var recognizedBrands = []string{
	"chanel",
	"dior",
	"calvin klein",
	"gucci",
	"essence",
	"apple",
	"samsung",
}

const (
	priceTierMidLower     = 20.0
	priceTierPremiumLower = 100.0
)

func priceTier(price float64) string {
	switch {
	case price < priceTierMidLower:
		return domain.PriceTierBudget
	case price < priceTierPremiumLower:
		return domain.PriceTierMidRange
	default:
		return domain.PriceTierPremium
	}
}

// popularityScore blends rating, stock availability, discount magnitude and
// brand recognition into one precomputed scalar. Rating dominates (0-50),
// stock adds a tier bonus (0-20), discount up to 50 points at half the
// percentage, recognized brands a flat 15.
func popularityScore(p domain.Product) float64 {
	score := p.Rating * 10

	switch {
	case p.StockQuantity > 50:
		score += 20
	case p.StockQuantity > 10:
		score += 15
	case p.StockQuantity > 0:
		score += 10
	}

	score += p.DiscountPercentage * 0.5

	brand := strings.ToLower(p.Brand)
	if brand != "" {
		for _, known := range recognizedBrands {
			if strings.Contains(brand, known) {
				score += 15
				break
			}
		}
	}

	return math.Round(score*100) / 100
}
