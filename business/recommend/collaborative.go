package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"elaraMarket/business/catalog"
	"elaraMarket/domain"
)

// collaborative recommends products engaged with by users whose own
// view/purchase history overlaps the target user's by at least MinOverlap
// products, ranked by how often they appear across those similar users,
// excluding everything the target user already saw.
func (s *Service) collaborative(ctx context.Context, snap *catalog.Snapshot, userID uint64, limit int) ([]domain.Product, error) {
	if s.behaviorRepo == nil || userID == 0 {
		return nil, nil
	}

	since := time.Now().Add(-s.cfg.BehaviorWindow)

	own, err := s.behaviorRepo.EventsByUser(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("load user events: %w", err)
	}

	seen := engagedProducts(own)
	if len(seen) == 0 {
		return nil, nil
	}

	seenIDs := make([]uint64, 0, len(seen))
	for id := range seen {
		seenIDs = append(seenIDs, id)
	}
	sort.Slice(seenIDs, func(i, j int) bool { return seenIDs[i] < seenIDs[j] })

	neighborEvents, err := s.behaviorRepo.EventsByProducts(ctx, seenIDs, userID, since)
	if err != nil {
		return nil, fmt.Errorf("load neighbor events: %w", err)
	}

	similar := s.similarUsers(neighborEvents)
	if len(similar) == 0 {
		return nil, nil
	}

	candidateEvents, err := s.behaviorRepo.EventsByUsers(ctx, similar, since)
	if err != nil {
		return nil, fmt.Errorf("load candidate events: %w", err)
	}

	counts := make(map[uint64]int)
	for _, ev := range candidateEvents {
		if !isEngagement(ev.Action) || ev.ProductID == 0 {
			continue
		}
		if _, already := seen[ev.ProductID]; already {
			continue
		}
		counts[ev.ProductID]++
	}

	return rankedByCount(snap, counts, limit), nil
}

// similarUsers counts per-user overlap with the target's product set and
// keeps those above the threshold, strongest overlap first.
func (s *Service) similarUsers(events []domain.BehaviorEvent) []uint64 {
	overlap := make(map[uint64]map[uint64]struct{})
	for _, ev := range events {
		if !isEngagement(ev.Action) || ev.ProductID == 0 {
			continue
		}
		set, ok := overlap[ev.UserID]
		if !ok {
			set = make(map[uint64]struct{})
			overlap[ev.UserID] = set
		}
		set[ev.ProductID] = struct{}{}
	}

	type userOverlap struct {
		userID uint64
		count  int
	}

	ranked := make([]userOverlap, 0, len(overlap))
	for uid, set := range overlap {
		if len(set) >= s.cfg.MinOverlap {
			ranked = append(ranked, userOverlap{userID: uid, count: len(set)})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].userID < ranked[j].userID
	})

	if len(ranked) > s.cfg.SimilarUserLimit {
		ranked = ranked[:s.cfg.SimilarUserLimit]
	}

	out := make([]uint64, 0, len(ranked))
	for _, u := range ranked {
		out = append(out, u.userID)
	}
	return out
}

// engagedProducts collects the product ids of view/purchase events.
func engagedProducts(events []domain.BehaviorEvent) map[uint64]struct{} {
	out := make(map[uint64]struct{})
	for _, ev := range events {
		if isEngagement(ev.Action) && ev.ProductID != 0 {
			out[ev.ProductID] = struct{}{}
		}
	}
	return out
}

func isEngagement(action string) bool {
	return action == domain.ActionView || action == domain.ActionPurchase
}

// rankedByCount maps count-ranked product ids onto live catalog records,
// dropping ids the current snapshot no longer carries. Ties break on the
// lower product id so the ordering is reproducible.
func rankedByCount(snap *catalog.Snapshot, counts map[uint64]int, limit int) []domain.Product {
	type candidate struct {
		productID uint64
		count     int
	}

	ranked := make([]candidate, 0, len(counts))
	for id, n := range counts {
		ranked = append(ranked, candidate{productID: id, count: n})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].productID < ranked[j].productID
	})

	out := make([]domain.Product, 0, limit)
	for _, c := range ranked {
		if len(out) >= limit {
			break
		}
		p, ok := snap.Product(c.productID)
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out
}
