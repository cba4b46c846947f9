package recommend

import (
	"context"

	"elaraMarket/business/catalog"
	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
)

// frequentlyBoughtTogether counts how often other products co-occur with the
// anchor product across historical orders and ranks by that frequency.
// Missing repo, unknown product or a failing read all degrade to an empty
// list; the caller's blend tolerates that.
func (s *Service) frequentlyBoughtTogether(ctx context.Context, snap *catalog.Snapshot, productID uint64, limit int) []domain.Product {
	if s.ordersRepo == nil || productID == 0 {
		return []domain.Product{}
	}
	if _, ok := snap.Product(productID); !ok {
		return []domain.Product{}
	}

	orderIDs, err := s.ordersRepo.OrderIDsContaining(ctx, productID)
	if err != nil {
		logger.Warn("failed to load orders for co-occurrence", "product_id", productID, "error", err)
		return []domain.Product{}
	}
	if len(orderIDs) == 0 {
		return []domain.Product{}
	}

	items, err := s.ordersRepo.ItemsByOrders(ctx, orderIDs)
	if err != nil {
		logger.Warn("failed to load order items for co-occurrence", "product_id", productID, "error", err)
		return []domain.Product{}
	}

	counts := make(map[uint64]int)
	for _, item := range items {
		if item.ProductID == productID {
			continue
		}
		counts[item.ProductID]++
	}

	return rankedByCount(snap, counts, limit)
}
