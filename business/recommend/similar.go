package recommend

import (
	"elaraMarket/business/catalog"
	"elaraMarket/domain"
)

// similarToProduct returns products from the anchor's category whose price
// falls within the configured band around the anchor's price, excluding the
// anchor itself. An unknown anchor id yields an empty list, not an error.
func (s *Service) similarToProduct(snap *catalog.Snapshot, productID uint64, limit int) []domain.Product {
	anchor, ok := snap.Product(productID)
	if !ok {
		return []domain.Product{}
	}

	band := anchor.Price * s.cfg.PriceBandPct
	minPrice := anchor.Price - band
	maxPrice := anchor.Price + band

	out := make([]domain.Product, 0, limit)
	for _, p := range snap.ByCategory(anchor.CategoryID) {
		if len(out) >= limit {
			break
		}
		if p.ID == anchor.ID {
			continue
		}
		if p.Price < minPrice || p.Price > maxPrice {
			continue
		}
		out = append(out, p)
	}

	return out
}
