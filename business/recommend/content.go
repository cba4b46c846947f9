package recommend

import (
	"context"
	"fmt"
	"time"

	"elaraMarket/business/catalog"
	"elaraMarket/domain"
)

// contentBased recommends unseen products from the categories of the user's
// recently viewed products. Category lists come out of the snapshot already
// popularity-ranked, so the output is ranked per category, most recently
// engaged category first.
func (s *Service) contentBased(ctx context.Context, snap *catalog.Snapshot, userID uint64, limit int) ([]domain.Product, error) {
	if s.behaviorRepo == nil || userID == 0 {
		return nil, nil
	}

	since := time.Now().Add(-s.cfg.BehaviorWindow)

	events, err := s.behaviorRepo.EventsByUser(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("load user events: %w", err)
	}

	seen := engagedProducts(events)
	if len(seen) == 0 {
		return nil, nil
	}

	// categories in most-recently-viewed-first order
	categories := make([]uint64, 0, 4)
	catSeen := make(map[uint64]struct{})
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if ev.Action != domain.ActionView || ev.ProductID == 0 {
			continue
		}
		p, ok := snap.Product(ev.ProductID)
		if !ok {
			continue
		}
		if _, dup := catSeen[p.CategoryID]; dup {
			continue
		}
		catSeen[p.CategoryID] = struct{}{}
		categories = append(categories, p.CategoryID)
	}

	out := make([]domain.Product, 0, limit)
	for _, catID := range categories {
		for _, p := range snap.ByCategory(catID) {
			if len(out) >= limit {
				return out, nil
			}
			if _, already := seen[p.ID]; already {
				continue
			}
			out = append(out, p)
		}
	}

	return out, nil
}
