package catalog

import (
	"sort"

	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
)

// Snapshot is an immutable point-in-time view of the catalog plus its derived
// indexes. A snapshot is built fully off to the side and then published with
// a single pointer swap; nothing mutates it afterwards.
type Snapshot struct {
	products   []domain.Product
	categories []domain.Category

	byID       map[uint64]int
	byCategory map[uint64][]domain.Product
	byKeyword  map[string][]uint64
	byTier     map[string][]domain.Product
	trending   []domain.Product
}

// buildSnapshot validates raw records, computes derived fields and builds all
// indexes. Malformed records are skipped and counted, never fatal.
func buildSnapshot(data FeedData, trendingSize int) (*Snapshot, Diagnostics) {
	diag := Diagnostics{SkipReasons: make(map[string]int)}

	snap := &Snapshot{
		products:   make([]domain.Product, 0, len(data.Products)),
		categories: data.Categories,
		byID:       make(map[uint64]int, len(data.Products)),
		byCategory: make(map[uint64][]domain.Product),
		byKeyword:  make(map[string][]uint64),
		byTier:     make(map[string][]domain.Product),
	}

	for _, raw := range data.Products {
		if reason := validate(raw); reason != "" {
			diag.Skipped++
			diag.SkipReasons[reason]++
			logger.Warn("skipping catalog record", "reason", reason, "product_id", raw.ID)
			continue
		}
		if _, dup := snap.byID[raw.ID]; dup {
			diag.Skipped++
			diag.SkipReasons["duplicate id"]++
			logger.Warn("skipping catalog record", "reason", "duplicate id", "product_id", raw.ID)
			continue
		}

		p := raw
		p.SearchTokens = searchTokens(p.Name)
		p.PriceTier = priceTier(p.Price)
		p.PopularityScore = popularityScore(p)

		snap.byID[p.ID] = len(snap.products)
		snap.products = append(snap.products, p)
	}

	for _, p := range snap.products {
		snap.byCategory[p.CategoryID] = append(snap.byCategory[p.CategoryID], p)
		snap.byTier[p.PriceTier] = append(snap.byTier[p.PriceTier], p)
		for _, tok := range p.SearchTokens {
			snap.byKeyword[tok] = append(snap.byKeyword[tok], p.ID)
		}
		for _, tok := range Tokenize(p.Brand) {
			if !containsID(snap.byKeyword[tok], p.ID) {
				snap.byKeyword[tok] = append(snap.byKeyword[tok], p.ID)
			}
		}
	}

	// Category lists stay popularity-descending so per-category reads are
	// already ranked.
	for _, list := range snap.byCategory {
		sortByPopularity(list)
	}

	trending := make([]domain.Product, len(snap.products))
	copy(trending, snap.products)
	sortByPopularity(trending)
	if trendingSize > 0 && len(trending) > trendingSize {
		trending = trending[:trendingSize]
	}
	snap.trending = trending

	if len(snap.categories) == 0 {
		snap.categories = deriveCategories(snap.byCategory)
	}

	diag.Loaded = len(snap.products)
	return snap, diag
}

func containsID(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func validate(p domain.Product) string {
	switch {
	case p.ID == 0:
		return "missing id"
	case p.Name == "":
		return "missing name"
	case p.Price < 0:
		return "negative price"
	default:
		return ""
	}
}

// sortByPopularity orders popularity-descending with the same deterministic
// tie-break as search results: rating desc, then price asc, then catalog
// insertion order (the sort is stable).
func sortByPopularity(list []domain.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].PopularityScore != list[j].PopularityScore {
			return list[i].PopularityScore > list[j].PopularityScore
		}
		if list[i].Rating != list[j].Rating {
			return list[i].Rating > list[j].Rating
		}
		return list[i].Price < list[j].Price
	})
}

// deriveCategories synthesizes bare category entries when the feed did not
// carry a category list.
func deriveCategories(byCategory map[uint64][]domain.Product) []domain.Category {
	ids := make([]uint64, 0, len(byCategory))
	for id := range byCategory {
		if id != 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Category{ID: id})
	}
	return out
}

// Products returns all products in catalog insertion order.
func (s *Snapshot) Products() []domain.Product {
	return s.products
}

func (s *Snapshot) Categories() []domain.Category {
	return s.categories
}

func (s *Snapshot) Product(id uint64) (domain.Product, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[idx], true
}

// ByCategory returns the category's products in popularity-descending order.
func (s *Snapshot) ByCategory(categoryID uint64) []domain.Product {
	return s.byCategory[categoryID]
}

// ByPriceTier returns products in the given tier, in insertion order.
func (s *Snapshot) ByPriceTier(tier string) []domain.Product {
	return s.byTier[tier]
}

// ByKeyword returns the ids of products whose search tokens contain tok.
func (s *Snapshot) ByKeyword(tok string) []uint64 {
	return s.byKeyword[tok]
}

// Trending returns up to n products by descending popularity score.
func (s *Snapshot) Trending(n int) []domain.Product {
	if n <= 0 || n > len(s.trending) {
		n = len(s.trending)
	}
	return s.trending[:n]
}

func (s *Snapshot) Len() int {
	return len(s.products)
}
