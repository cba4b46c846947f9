package recommend

import (
	"context"
	"fmt"
	"time"

	"elaraMarket/business/catalog"
	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
)

// CatalogReader is the read side of the catalog the engine needs.
type CatalogReader interface {
	Snapshot() *catalog.Snapshot
}

// BehaviorRepository reads the append-only behavior log. All queries are
// bounded by `since`; implementations must return events time-ordered.
type BehaviorRepository interface {
	EventsByUser(ctx context.Context, userID uint64, since time.Time) ([]domain.BehaviorEvent, error)
	EventsByProducts(ctx context.Context, productIDs []uint64, excludeUserID uint64, since time.Time) ([]domain.BehaviorEvent, error)
	EventsByUsers(ctx context.Context, userIDs []uint64, since time.Time) ([]domain.BehaviorEvent, error)
}

// OrdersRepository reads historical orders for co-occurrence counting.
type OrdersRepository interface {
	OrderIDsContaining(ctx context.Context, productID uint64) ([]uint64, error)
	ItemsByOrders(ctx context.Context, orderIDs []uint64) ([]domain.OrderItem, error)
}

type Request struct {
	UserID    uint64
	ProductID uint64
	Mode      string
	Limit     int
}

type Service struct {
	catalog      CatalogReader
	behaviorRepo BehaviorRepository
	ordersRepo   OrdersRepository
	cfg          Config
}

// NewService wires the engine. behaviorRepo and ordersRepo may be nil; the
// strategies that need them then contribute nothing and the blend falls back
// to popularity.
func NewService(catalogReader CatalogReader, behaviorRepo BehaviorRepository, ordersRepo OrdersRepository, cfg Config) *Service {
	return &Service{
		catalog:      catalogReader,
		behaviorRepo: behaviorRepo,
		ordersRepo:   ordersRepo,
		cfg:          cfg,
	}
}

// Recommend dispatches to the requested mode. The result never contains
// duplicate ids and never exceeds req.Limit.
func (s *Service) Recommend(ctx context.Context, req Request) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if req.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", domain.ErrInvalidInput)
	}

	snap := s.catalog.Snapshot()
	if snap == nil {
		return nil, fmt.Errorf("catalog not loaded: %w", domain.ErrSourceUnavailable)
	}

	switch req.Mode {
	case domain.ModeTrending:
		return snap.Trending(req.Limit), nil
	case domain.ModeSimilar:
		return s.similarToProduct(snap, req.ProductID, req.Limit), nil
	case domain.ModeFrequentlyBought:
		return s.frequentlyBoughtTogether(ctx, snap, req.ProductID, req.Limit), nil
	case domain.ModePersonalized, "":
		return s.personalized(ctx, snap, req.UserID, req.Limit), nil
	default:
		return nil, fmt.Errorf("unknown mode %q: %w", req.Mode, domain.ErrInvalidInput)
	}
}

// personalized runs the configured blend order, deduplicating by product id
// in first-seen order, until the limit is filled. A strategy that errors or
// has no signal contributes nothing; popularity always completes the list.
func (s *Service) personalized(ctx context.Context, snap *catalog.Snapshot, userID uint64, limit int) []domain.Product {
	blend := newBlender(limit)

	for _, strategy := range s.cfg.BlendOrder {
		if blend.full() {
			break
		}

		var (
			products []domain.Product
			err      error
		)

		switch strategy {
		case StrategyCollaborative:
			products, err = s.collaborative(ctx, snap, userID, limit)
		case StrategyContent:
			products, err = s.contentBased(ctx, snap, userID, limit)
		case StrategyPopularity:
			products = snap.Trending(limit + blend.len())
		default:
			logger.Warn("unknown blend strategy", "strategy", strategy)
			continue
		}

		if err != nil {
			logger.Warn("recommendation strategy failed", "strategy", strategy, "user_id", userID, "error", err)
			continue
		}

		blend.add(products)
	}

	return blend.result()
}

// blender accumulates strategy outputs with first-seen dedup and a hard cap.
type blender struct {
	limit int
	seen  map[uint64]struct{}
	out   []domain.Product
}

func newBlender(limit int) *blender {
	return &blender{
		limit: limit,
		seen:  make(map[uint64]struct{}),
		out:   make([]domain.Product, 0, limit),
	}
}

func (b *blender) add(products []domain.Product) {
	for _, p := range products {
		if len(b.out) >= b.limit {
			return
		}
		if _, dup := b.seen[p.ID]; dup {
			continue
		}
		b.seen[p.ID] = struct{}{}
		b.out = append(b.out, p)
	}
}

func (b *blender) full() bool   { return len(b.out) >= b.limit }
func (b *blender) len() int     { return len(b.out) }
func (b *blender) result() []domain.Product { return b.out }
