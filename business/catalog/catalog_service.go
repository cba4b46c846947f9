package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
	"elaraMarket/pkg/metrics"
)

// Service owns the current catalog snapshot. Readers grab one snapshot
// reference per request and never observe a reload mid-computation; Reload
// builds the replacement off to the side and publishes it with one swap.
type Service struct {
	feed         Feed
	trendingSize int

	snap     atomic.Pointer[Snapshot]
	lastDiag atomic.Pointer[Diagnostics]
	degraded atomic.Bool

	// serializes concurrent Reload calls, not reads
	reloadMu sync.Mutex
}

func NewService(feed Feed, trendingSize int) *Service {
	return &Service{
		feed:         feed,
		trendingSize: trendingSize,
	}
}

// Load fetches and indexes the catalog for the first time. Unlike Reload it
// fails hard when the source is unreachable, because there is no last good
// snapshot to fall back on.
func (s *Service) Load(ctx context.Context) (Diagnostics, error) {
	return s.reload(ctx, true)
}

// Reload atomically replaces the snapshot. On source failure the previous
// snapshot stays live and the service reports degraded mode; it never swaps
// in an empty catalog over a good one.
func (s *Service) Reload(ctx context.Context) (Diagnostics, error) {
	return s.reload(ctx, false)
}

func (s *Service) reload(ctx context.Context, initial bool) (Diagnostics, error) {
	if err := ctx.Err(); err != nil {
		return Diagnostics{}, fmt.Errorf("context error: %w", err)
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	data, err := s.feed.Fetch(ctx)
	if err == nil && len(data.Products) == 0 {
		err = fmt.Errorf("catalog feed returned no products: %w", domain.ErrSourceUnavailable)
	}

	if err != nil {
		metrics.CatalogReloads.WithLabelValues("error").Inc()

		if initial || s.snap.Load() == nil {
			return Diagnostics{}, fmt.Errorf("initial catalog load failed: %w", err)
		}

		// keep serving the last good snapshot
		s.degraded.Store(true)
		metrics.CatalogDegraded.Set(1)
		logger.Error("catalog reload failed, serving last good snapshot", "error", err)

		diag := s.Diagnostics()
		diag.Degraded = true
		return diag, fmt.Errorf("catalog reload failed: %w", err)
	}

	snap, diag := buildSnapshot(data, s.trendingSize)

	s.snap.Store(snap)
	s.lastDiag.Store(&diag)
	s.degraded.Store(false)

	metrics.CatalogReloads.WithLabelValues("ok").Inc()
	metrics.CatalogDegraded.Set(0)
	metrics.CatalogSkippedRecords.Add(float64(diag.Skipped))

	logger.Info("catalog loaded",
		"products", diag.Loaded,
		"skipped", diag.Skipped,
		"categories", len(snap.Categories()),
	)

	return diag, nil
}

// Snapshot returns the current snapshot. Callers must hold on to the returned
// pointer for the duration of their request instead of re-fetching it.
func (s *Service) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Degraded reports whether the last reload failed and a stale snapshot is
// being served.
func (s *Service) Degraded() bool {
	return s.degraded.Load()
}

// Diagnostics returns the stats of the last successful load, with the current
// degraded flag applied.
func (s *Service) Diagnostics() Diagnostics {
	var diag Diagnostics
	if d := s.lastDiag.Load(); d != nil {
		diag = *d
	}
	diag.Degraded = s.degraded.Load()
	return diag
}

// Product looks up a product by id in the current snapshot.
func (s *Service) Product(id uint64) (domain.Product, error) {
	snap := s.snap.Load()
	if snap == nil {
		return domain.Product{}, domain.ErrSourceUnavailable
	}

	p, ok := snap.Product(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	return p, nil
}

func (s *Service) Categories() []domain.Category {
	snap := s.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.Categories()
}

func (s *Service) ByCategory(categoryID uint64) []domain.Product {
	snap := s.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.ByCategory(categoryID)
}

func (s *Service) Trending(n int) []domain.Product {
	snap := s.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.Trending(n)
}

func (s *Service) Products() []domain.Product {
	snap := s.snap.Load()
	if snap == nil {
		return nil
	}
	return snap.Products()
}
