package domain

import (
	"time"
)

// Price tiers derived at index-build time.
const (
	PriceTierBudget   = "budget"
	PriceTierMidRange = "mid-range"
	PriceTierPremium  = "premium"
)

// Product is an immutable catalog record. The derived fields (SearchTokens,
// PriceTier, PopularityScore) are computed when a snapshot is built and are
// never patched afterwards; a catalog reload recomputes all of them.
type Product struct {
	ID                 uint64  `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	CategoryID         uint64  `json:"category_id"`
	Brand              string  `json:"brand,omitempty"`
	Rating             float64 `json:"rating"`
	StockQuantity      int     `json:"stock_quantity"`
	DiscountPercentage float64 `json:"discount_percentage"`

	CreatedAt time.Time `json:"created_at,omitempty"`

	// Derived, snapshot-build only.
	SearchTokens    []string `json:"-"`
	PriceTier       string   `json:"price_tier,omitempty"`
	PopularityScore float64  `json:"popularity_score,omitempty"`
}

// DiscountedPrice applies the discount percentage to the list price.
func (p Product) DiscountedPrice() float64 {
	if p.DiscountPercentage <= 0 {
		return p.Price
	}
	return p.Price - p.Price*(p.DiscountPercentage/100)
}

type Category struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
