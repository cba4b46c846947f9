package search

import (
	"context"
	"fmt"
	"sort"

	"elaraMarket/business/catalog"
	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
)

// CatalogReader is the read side of the catalog the search service needs.
type CatalogReader interface {
	Snapshot() *catalog.Snapshot
}

// SessionStore records conversation turns and serves the previous turn's
// context for the personalization bonus.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (domain.SessionContext, bool, error)
	Record(ctx context.Context, sessionID, query, response string, shown []uint64) error
}

type Request struct {
	Query     string
	Filters   domain.SearchFilters
	Limit     int
	SessionID string
	Prefs     *domain.Preferences
}

type Service struct {
	catalog  CatalogReader
	sessions SessionStore
	weights  Weights
}

func NewService(catalogReader CatalogReader, sessions SessionStore, weights Weights) *Service {
	return &Service{
		catalog:  catalogReader,
		sessions: sessions,
		weights:  weights,
	}
}

// Search scores the candidate set against the query and returns the top
// results. A blank query returns the trending head instead of nothing.
func (s *Service) Search(ctx context.Context, req Request) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if req.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", domain.ErrInvalidInput)
	}
	if req.Filters.MaxPrice > 0 && req.Filters.MinPrice > req.Filters.MaxPrice {
		return nil, fmt.Errorf("min price above max price: %w", domain.ErrInvalidInput)
	}

	snap := s.catalog.Snapshot()
	if snap == nil {
		return nil, fmt.Errorf("catalog not loaded: %w", domain.ErrSourceUnavailable)
	}

	query, queryTokens := NormalizeQuery(req.Query)
	if query == "" {
		return snap.Trending(req.Limit), nil
	}

	prefs := req.Prefs
	if prefs == nil && req.SessionID != "" {
		prefs = s.sessionPreferences(ctx, req.SessionID, snap)
	}

	results := s.rank(snap, query, queryTokens, req.Filters, prefs)
	if len(results) > req.Limit {
		results = results[:req.Limit]
	}

	if req.SessionID != "" && s.sessions != nil {
		shown := topIDs(results, domain.SessionMaxShownProducts)
		summary := fmt.Sprintf("%d results", len(results))
		if err := s.sessions.Record(ctx, req.SessionID, req.Query, summary, shown); err != nil {
			logger.Warn("failed to record search in session", "session_id", req.SessionID, "error", err)
		}
	}

	return results, nil
}

// rank scores every candidate and sorts by (score, rating, price, insertion
// order). Candidates are walked in catalog insertion order so the stable sort
// makes the final tie-break deterministic.
func (s *Service) rank(snap *catalog.Snapshot, query string, queryTokens []string, filters domain.SearchFilters, prefs *domain.Preferences) []domain.Product {
	candidates := snap.Products()
	if filters.CategoryID != 0 {
		candidates = snap.ByCategory(filters.CategoryID)
	}

	type scored struct {
		product domain.Product
		score   float64
	}

	results := make([]scored, 0, len(candidates))
	for _, p := range candidates {
		if filters.MinPrice > 0 && p.Price < filters.MinPrice {
			continue
		}
		if filters.MaxPrice > 0 && p.Price > filters.MaxPrice {
			continue
		}

		score := s.weights.Score(p, query, queryTokens, prefs)
		if score <= 0 {
			continue
		}
		results = append(results, scored{product: p, score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		if results[i].product.Rating != results[j].product.Rating {
			return results[i].product.Rating > results[j].product.Rating
		}
		return results[i].product.Price < results[j].product.Price
	})

	out := make([]domain.Product, len(results))
	for i, r := range results {
		out[i] = r.product
	}
	return out
}

// sessionPreferences derives a preferred-category set from the products shown
// on the previous turn of the conversation.
func (s *Service) sessionPreferences(ctx context.Context, sessionID string, snap *catalog.Snapshot) *domain.Preferences {
	if s.sessions == nil {
		return nil
	}

	sessCtx, ok, err := s.sessions.Get(ctx, sessionID)
	if err != nil || !ok || len(sessCtx.LastShownProducts) == 0 {
		return nil
	}

	seen := make(map[uint64]struct{})
	prefs := &domain.Preferences{}
	for _, id := range sessCtx.LastShownProducts {
		p, found := snap.Product(id)
		if !found {
			continue
		}
		if _, dup := seen[p.CategoryID]; dup {
			continue
		}
		seen[p.CategoryID] = struct{}{}
		prefs.PreferredCategories = append(prefs.PreferredCategories, p.CategoryID)
	}

	if len(prefs.PreferredCategories) == 0 {
		return nil
	}
	return prefs
}

func topIDs(products []domain.Product, n int) []uint64 {
	if n > len(products) {
		n = len(products)
	}
	ids := make([]uint64, 0, n)
	for _, p := range products[:n] {
		ids = append(ids, p.ID)
	}
	return ids
}
