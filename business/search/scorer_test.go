package search

import (
	"testing"

	"elaraMarket/domain"
)

func TestScoreBands(t *testing.T) {
	w := DefaultWeights()
	query, tokens := NormalizeQuery("iphone")

	exact := domain.Product{Name: "iPhone 9", SearchTokens: []string{"iphone", "9"}}
	brandOnly := domain.Product{Name: "Galaxy S10", Brand: "iPhoneCase Co", SearchTokens: []string{"galaxy", "s10"}}
	descOnly := domain.Product{Name: "USB Cable", Description: "compatible with iphone", SearchTokens: []string{"usb", "cable"}}
	noMatch := domain.Product{Name: "Banana", SearchTokens: []string{"banana"}}

	exactScore := w.Score(exact, query, tokens, nil)
	brandScore := w.Score(brandOnly, query, tokens, nil)
	descScore := w.Score(descOnly, query, tokens, nil)

	if exactScore <= brandScore || brandScore <= descScore {
		t.Errorf("band ordering violated: exact=%.2f brand=%.2f desc=%.2f", exactScore, brandScore, descScore)
	}
	if got := w.Score(noMatch, query, tokens, nil); got != 0 {
		t.Errorf("expected 0 for non-match, got %.2f", got)
	}
}

func TestScoreMultiTokenOverlap(t *testing.T) {
	w := DefaultWeights()
	query, tokens := NormalizeQuery("wireless mouse")

	both := domain.Product{Name: "Wireless Mouse", SearchTokens: []string{"wireless", "mouse"}}
	one := domain.Product{Name: "Wireless Keyboard", SearchTokens: []string{"wireless", "keyboard"}}

	if w.Score(both, query, tokens, nil) <= w.Score(one, query, tokens, nil) {
		t.Error("expected two-token match to outscore one-token match")
	}
}

func TestScorePopularityBreaksTextTies(t *testing.T) {
	w := DefaultWeights()
	query, tokens := NormalizeQuery("iphone")

	popular := domain.Product{Name: "iPhone 9", SearchTokens: []string{"iphone", "9"}, PopularityScore: 88.38}
	lessPopular := domain.Product{Name: "iPhone X", SearchTokens: []string{"iphone", "x"}, PopularityScore: 83.37}

	a := w.Score(popular, query, tokens, nil)
	b := w.Score(lessPopular, query, tokens, nil)
	if a <= b {
		t.Errorf("expected popularity to break the tie: %.2f vs %.2f", a, b)
	}

	// the factor must stay small enough that it never outranks a band
	if a-b >= w.Description {
		t.Errorf("popularity contribution %.2f too large", a-b)
	}
}

func TestScorePreferenceBonuses(t *testing.T) {
	w := DefaultWeights()
	query, tokens := NormalizeQuery("lipstick")

	p := domain.Product{Name: "Red Lipstick", CategoryID: 1, Price: 12.99, SearchTokens: []string{"red", "lipstick"}}

	base := w.Score(p, query, tokens, nil)
	withCat := w.Score(p, query, tokens, &domain.Preferences{PreferredCategories: []uint64{1}})
	withBoth := w.Score(p, query, tokens, &domain.Preferences{PreferredCategories: []uint64{1}, MinPrice: 10, MaxPrice: 20})

	if withCat-base != w.PrefCategory {
		t.Errorf("expected category bonus %.2f, got %.2f", w.PrefCategory, withCat-base)
	}
	if withBoth-withCat != w.PrefPrice {
		t.Errorf("expected price bonus %.2f, got %.2f", w.PrefPrice, withBoth-withCat)
	}

	// preferences never resurrect a non-match
	noMatch := domain.Product{Name: "Banana", CategoryID: 1, SearchTokens: []string{"banana"}}
	if got := w.Score(noMatch, query, tokens, &domain.Preferences{PreferredCategories: []uint64{1}}); got != 0 {
		t.Errorf("expected 0 for non-match with preferences, got %.2f", got)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	w := DefaultWeights()
	query, tokens := NormalizeQuery("iphone 9")
	p := domain.Product{Name: "iPhone 9", Brand: "Apple", SearchTokens: []string{"iphone", "9"}, PopularityScore: 88.38}

	first := w.Score(p, query, tokens, nil)
	for i := 0; i < 10; i++ {
		if got := w.Score(p, query, tokens, nil); got != first {
			t.Fatalf("score changed between calls: %.4f vs %.4f", got, first)
		}
	}
}
