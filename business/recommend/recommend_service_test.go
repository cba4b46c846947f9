package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"elaraMarket/business/catalog"
	"elaraMarket/domain"
)

type stubFeed struct {
	data catalog.FeedData
}

func (f stubFeed) Fetch(ctx context.Context) (catalog.FeedData, error) {
	return f.data, nil
}

func testCatalog(t *testing.T) *catalog.Service {
	t.Helper()

	svc := catalog.NewService(stubFeed{data: catalog.FeedData{
		Products: []domain.Product{
			{ID: 1, Name: "iPhone 9", Brand: "Apple", Price: 549, CategoryID: 2, Rating: 4.69, StockQuantity: 94},
			{ID: 2, Name: "iPhone X", Brand: "Apple", Price: 899, CategoryID: 2, Rating: 4.44, StockQuantity: 34},
			{ID: 3, Name: "Galaxy S10", Brand: "Samsung", Price: 620, CategoryID: 2, Rating: 4.1, StockQuantity: 12},
			{ID: 4, Name: "Budget Phone", Price: 99, CategoryID: 2, Rating: 3.0, StockQuantity: 5},
			{ID: 5, Name: "Red Lipstick", Price: 12.99, CategoryID: 1, Rating: 2.51, StockQuantity: 68},
		},
	}}, 10)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}
	return svc
}

type fakeBehaviorRepo struct {
	byUser     map[uint64][]domain.BehaviorEvent
	byProducts []domain.BehaviorEvent
	err        error
}

func (f *fakeBehaviorRepo) EventsByUser(ctx context.Context, userID uint64, since time.Time) ([]domain.BehaviorEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeBehaviorRepo) EventsByProducts(ctx context.Context, productIDs []uint64, excludeUserID uint64, since time.Time) ([]domain.BehaviorEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byProducts, nil
}

func (f *fakeBehaviorRepo) EventsByUsers(ctx context.Context, userIDs []uint64, since time.Time) ([]domain.BehaviorEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.BehaviorEvent
	for _, id := range userIDs {
		out = append(out, f.byUser[id]...)
	}
	return out, nil
}

type fakeOrdersRepo struct {
	orders map[uint64][]uint64 // order id -> product ids
}

func (f *fakeOrdersRepo) OrderIDsContaining(ctx context.Context, productID uint64) ([]uint64, error) {
	var out []uint64
	for orderID, items := range f.orders {
		for _, pid := range items {
			if pid == productID {
				out = append(out, orderID)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeOrdersRepo) ItemsByOrders(ctx context.Context, orderIDs []uint64) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	for _, orderID := range orderIDs {
		for _, pid := range f.orders[orderID] {
			out = append(out, domain.OrderItem{OrderID: orderID, ProductID: pid})
		}
	}
	return out, nil
}

func view(userID, productID uint64) domain.BehaviorEvent {
	return domain.BehaviorEvent{UserID: userID, ProductID: productID, Action: domain.ActionView, CreatedAt: time.Now()}
}

func TestRecommendValidation(t *testing.T) {
	svc := NewService(testCatalog(t), nil, nil, DefaultConfig())

	if _, err := svc.Recommend(context.Background(), Request{Mode: domain.ModeTrending, Limit: 0}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero limit, got %v", err)
	}
	if _, err := svc.Recommend(context.Background(), Request{Mode: "bogus", Limit: 5}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown mode, got %v", err)
	}
}

func TestRecommendTrending(t *testing.T) {
	svc := NewService(testCatalog(t), nil, nil, DefaultConfig())

	products, err := svc.Recommend(context.Background(), Request{Mode: domain.ModeTrending, Limit: 3})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[0].ID != 1 {
		t.Errorf("expected most popular first, got %d", products[0].ID)
	}
}

func TestRecommendSimilarPriceBand(t *testing.T) {
	svc := NewService(testCatalog(t), nil, nil, DefaultConfig())

	// anchor iPhone 9 at 549: band is 384.30 to 713.70, so Galaxy S10 (620)
	// qualifies while iPhone X (899) and Budget Phone (99) do not
	products, err := svc.Recommend(context.Background(), Request{Mode: domain.ModeSimilar, ProductID: 1, Limit: 10})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != 3 {
		t.Errorf("unexpected similar products: %v", products)
	}

	// unknown anchor yields empty, not an error
	products, err = svc.Recommend(context.Background(), Request{Mode: domain.ModeSimilar, ProductID: 999, Limit: 10})
	if err != nil || len(products) != 0 {
		t.Errorf("expected empty result for unknown anchor, got %v, %v", products, err)
	}
}

func TestRecommendFrequentlyBought(t *testing.T) {
	orders := &fakeOrdersRepo{orders: map[uint64][]uint64{
		10: {1, 2, 5},
		11: {1, 2},
		12: {1, 5},
		13: {3, 4},
	}}
	svc := NewService(testCatalog(t), nil, orders, DefaultConfig())

	products, err := svc.Recommend(context.Background(), Request{Mode: domain.ModeFrequentlyBought, ProductID: 1, Limit: 10})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	// product 2 co-occurs twice, product 5 twice; tie broken by lower id
	if len(products) != 2 || products[0].ID != 2 || products[1].ID != 5 {
		t.Errorf("unexpected co-occurrence ranking: %v", products)
	}
}

func TestRecommendFrequentlyBoughtWithoutOrders(t *testing.T) {
	svc := NewService(testCatalog(t), nil, nil, DefaultConfig())

	products, err := svc.Recommend(context.Background(), Request{Mode: domain.ModeFrequentlyBought, ProductID: 1, Limit: 10})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected empty result without orders repo, got %v", products)
	}
}

func TestPersonalizedCollaborativeFirst(t *testing.T) {
	behavior := &fakeBehaviorRepo{
		byUser: map[uint64][]domain.BehaviorEvent{
			1: {view(1, 1), view(1, 2)},
			2: {view(2, 1), view(2, 2), view(2, 3)},
			3: {view(3, 1), view(3, 2), view(3, 4)},
		},
		byProducts: []domain.BehaviorEvent{
			view(2, 1), view(2, 2),
			view(3, 1), view(3, 2),
		},
	}
	svc := NewService(testCatalog(t), behavior, nil, DefaultConfig())

	products, err := svc.Recommend(context.Background(), Request{UserID: 1, Mode: domain.ModePersonalized, Limit: 2})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	// users 2 and 3 both overlap on products 1 and 2; their unseen products
	// 3 and 4 are the collaborative candidates
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	got := map[uint64]bool{products[0].ID: true, products[1].ID: true}
	if !got[3] || !got[4] {
		t.Errorf("expected collaborative candidates 3 and 4, got %v", products)
	}
}

func TestPersonalizedFallsBackToPopularity(t *testing.T) {
	// no behavior data at all: blend must still fill from trending
	svc := NewService(testCatalog(t), nil, nil, DefaultConfig())

	products, err := svc.Recommend(context.Background(), Request{UserID: 42, Mode: domain.ModePersonalized, Limit: 3})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[0].ID != 1 {
		t.Errorf("expected popularity order, got %v", products)
	}
}

func TestPersonalizedSurvivesStrategyFailure(t *testing.T) {
	behavior := &fakeBehaviorRepo{err: errors.New("db down")}
	svc := NewService(testCatalog(t), behavior, nil, DefaultConfig())

	products, err := svc.Recommend(context.Background(), Request{UserID: 1, Mode: domain.ModePersonalized, Limit: 3})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(products) != 3 {
		t.Errorf("expected popularity fallback despite failing strategies, got %d", len(products))
	}
}

func TestPersonalizedDeduplicatesAndCaps(t *testing.T) {
	behavior := &fakeBehaviorRepo{
		byUser: map[uint64][]domain.BehaviorEvent{
			1: {view(1, 5)},
		},
	}
	svc := NewService(testCatalog(t), behavior, nil, DefaultConfig())

	products, err := svc.Recommend(context.Background(), Request{UserID: 1, Mode: domain.ModePersonalized, Limit: 3})
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}

	if len(products) != 3 {
		t.Fatalf("expected exactly 3 products, got %d", len(products))
	}
	seen := make(map[uint64]bool)
	for _, p := range products {
		if seen[p.ID] {
			t.Errorf("duplicate product %d in blend", p.ID)
		}
		seen[p.ID] = true
	}
}
