package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"elaraMarket/domain"
)

// testClock lets the tests move time forward without sleeping.
type testClock struct {
	now time.Time
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestStore(idleTimeout time.Duration) (*MemoryStore, *testClock) {
	clock := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(idleTimeout)
	store.now = func() time.Time { return clock.now }
	return store, clock
}

func TestRecordAndGet(t *testing.T) {
	store, _ := newTestStore(30 * time.Minute)
	ctx := context.Background()

	if err := store.Record(ctx, "s1", "iphone", "2 results", []uint64{1, 2}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	sessCtx, ok, err := store.Get(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if len(sessCtx.Messages) != 1 || sessCtx.Messages[0].Query != "iphone" {
		t.Errorf("unexpected messages: %+v", sessCtx.Messages)
	}
	if len(sessCtx.LastShownProducts) != 2 {
		t.Errorf("unexpected shown products: %v", sessCtx.LastShownProducts)
	}
}

func TestGetUnknownSession(t *testing.T) {
	store, _ := newTestStore(30 * time.Minute)

	_, ok, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok {
		t.Error("expected missing session to report not found")
	}
}

func TestIdleExpiry(t *testing.T) {
	store, clock := newTestStore(30 * time.Minute)
	ctx := context.Background()

	if err := store.Record(ctx, "s1", "iphone", "ok", nil); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	// activity within the window keeps the session alive
	clock.advance(29 * time.Minute)
	if _, ok, _ := store.Get(ctx, "s1"); !ok {
		t.Fatal("session expired too early")
	}

	clock.advance(31 * time.Minute)
	if _, ok, _ := store.Get(ctx, "s1"); ok {
		t.Fatal("expected idle session to expire")
	}

	// the stale entry is gone, not just hidden
	store.mu.RLock()
	_, present := store.sessions["s1"]
	store.mu.RUnlock()
	if present {
		t.Error("expected expired session removed on access")
	}
}

func TestRecordResetsStaleSession(t *testing.T) {
	store, clock := newTestStore(30 * time.Minute)
	ctx := context.Background()

	if err := store.Record(ctx, "s1", "first", "ok", []uint64{1}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	clock.advance(31 * time.Minute)

	// same id after expiry starts a fresh conversation
	if err := store.Record(ctx, "s1", "second", "ok", nil); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	sessCtx, ok, _ := store.Get(ctx, "s1")
	if !ok {
		t.Fatal("expected live session after re-record")
	}
	if len(sessCtx.Messages) != 1 || sessCtx.Messages[0].Query != "second" {
		t.Errorf("expected fresh context, got %+v", sessCtx.Messages)
	}
	if len(sessCtx.LastShownProducts) != 0 {
		t.Errorf("expected shown products cleared, got %v", sessCtx.LastShownProducts)
	}
}

func TestMessageAndShownCaps(t *testing.T) {
	store, _ := newTestStore(30 * time.Minute)
	ctx := context.Background()

	for i := 0; i < domain.SessionMaxMessages+5; i++ {
		query := fmt.Sprintf("query %d", i)
		if err := store.Record(ctx, "s1", query, "ok", nil); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	if err := store.Record(ctx, "s1", "last", "ok", []uint64{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	sessCtx, _, _ := store.Get(ctx, "s1")
	if len(sessCtx.Messages) != domain.SessionMaxMessages {
		t.Errorf("expected %d messages, got %d", domain.SessionMaxMessages, len(sessCtx.Messages))
	}
	if sessCtx.Messages[len(sessCtx.Messages)-1].Query != "last" {
		t.Error("expected newest message kept")
	}
	if len(sessCtx.LastShownProducts) != domain.SessionMaxShownProducts {
		t.Errorf("expected %d shown products, got %d", domain.SessionMaxShownProducts, len(sessCtx.LastShownProducts))
	}
}

func TestUpdatePreferencesMerges(t *testing.T) {
	store, _ := newTestStore(30 * time.Minute)
	ctx := context.Background()

	if err := store.UpdatePreferences(ctx, "s1", map[string]string{"category": "beauty"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := store.UpdatePreferences(ctx, "s1", map[string]string{"budget": "low"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	sessCtx, ok, _ := store.Get(ctx, "s1")
	if !ok {
		t.Fatal("expected session to exist")
	}
	if sessCtx.Preferences["category"] != "beauty" || sessCtx.Preferences["budget"] != "low" {
		t.Errorf("unexpected preferences: %v", sessCtx.Preferences)
	}
}

func TestPurgeExpired(t *testing.T) {
	store, clock := newTestStore(30 * time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Record(ctx, fmt.Sprintf("old%d", i), "q", "ok", nil); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	clock.advance(31 * time.Minute)
	if err := store.Record(ctx, "fresh", "q", "ok", nil); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	purged, err := store.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if purged != 3 {
		t.Errorf("expected 3 purged, got %d", purged)
	}
	if _, ok, _ := store.Get(ctx, "fresh"); !ok {
		t.Error("expected fresh session to survive the sweep")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store, _ := newTestStore(30 * time.Minute)
	ctx := context.Background()

	if err := store.Record(ctx, "s1", "q", "ok", []uint64{1}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	first, _, _ := store.Get(ctx, "s1")
	first.LastShownProducts[0] = 99
	first.Messages[0].Query = "mutated"

	second, _, _ := store.Get(ctx, "s1")
	if second.LastShownProducts[0] != 1 || second.Messages[0].Query != "q" {
		t.Error("Get leaked internal state to the caller")
	}
}
