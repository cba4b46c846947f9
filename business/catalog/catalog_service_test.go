package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"elaraMarket/domain"
)

type fakeFeed struct {
	mu   sync.Mutex
	data FeedData
	err  error
}

func (f *fakeFeed) Fetch(ctx context.Context) (FeedData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return FeedData{}, f.err
	}
	return f.data, nil
}

func (f *fakeFeed) set(data FeedData, err error) {
	f.mu.Lock()
	f.data = data
	f.err = err
	f.mu.Unlock()
}

func TestServiceLoadAndLookup(t *testing.T) {
	feed := &fakeFeed{data: testFeedData()}
	svc := NewService(feed, 10)

	diag, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if diag.Loaded != 4 {
		t.Fatalf("expected 4 loaded, got %d", diag.Loaded)
	}

	p, err := svc.Product(1)
	if err != nil {
		t.Fatalf("product lookup failed: %v", err)
	}
	if p.Name != "iPhone 9" {
		t.Errorf("unexpected product: %q", p.Name)
	}

	if _, err := svc.Product(999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceInitialLoadFailsHard(t *testing.T) {
	feed := &fakeFeed{err: errors.New("feed down")}
	svc := NewService(feed, 10)

	if _, err := svc.Load(context.Background()); err == nil {
		t.Fatal("expected initial load to fail")
	}
	if svc.Snapshot() != nil {
		t.Error("expected no snapshot after failed initial load")
	}
}

func TestServiceEmptyFeedIsUnavailable(t *testing.T) {
	feed := &fakeFeed{}
	svc := NewService(feed, 10)

	_, err := svc.Load(context.Background())
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestServiceReloadFailureKeepsLastSnapshot(t *testing.T) {
	feed := &fakeFeed{data: testFeedData()}
	svc := NewService(feed, 10)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	feed.set(FeedData{}, errors.New("feed down"))

	if _, err := svc.Reload(context.Background()); err == nil {
		t.Fatal("expected reload to fail")
	}

	if !svc.Degraded() {
		t.Error("expected degraded mode after failed reload")
	}
	if svc.Snapshot() == nil || svc.Snapshot().Len() != 4 {
		t.Error("expected last good snapshot to keep serving")
	}

	// a later successful reload clears degraded mode
	feed.set(testFeedData(), nil)
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if svc.Degraded() {
		t.Error("expected degraded mode cleared")
	}
}

func TestServiceReloadIsAtomicUnderConcurrentReads(t *testing.T) {
	feed := &fakeFeed{data: testFeedData()}
	svc := NewService(feed, 10)

	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snap := svc.Snapshot()
				if snap == nil {
					t.Error("reader observed nil snapshot")
					return
				}
				// a snapshot reference must stay internally consistent even
				// while reloads swap the live one
				if _, ok := snap.Product(1); !ok || snap.Len() != 4 {
					t.Error("reader observed inconsistent snapshot")
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if _, err := svc.Reload(context.Background()); err != nil {
			t.Errorf("reload failed: %v", err)
		}
	}
	close(done)
	wg.Wait()
}
