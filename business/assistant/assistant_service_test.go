package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"elaraMarket/business/search"
	"elaraMarket/domain"
)

type fakeCompletion struct {
	reply string
	err   error
	slow  bool
}

func (f *fakeCompletion) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if f.slow {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	return f.reply, f.err
}

type fakeSearcher struct {
	products []domain.Product
}

func (f *fakeSearcher) Search(ctx context.Context, req search.Request) ([]domain.Product, error) {
	return f.products, nil
}

type fakeSessions struct {
	recorded int
	lastID   string
}

func (f *fakeSessions) Get(ctx context.Context, sessionID string) (domain.SessionContext, bool, error) {
	return domain.SessionContext{}, false, nil
}

func (f *fakeSessions) Record(ctx context.Context, sessionID, query, response string, shown []uint64) error {
	f.recorded++
	f.lastID = sessionID
	return nil
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "iPhone 9", Brand: "Apple", Price: 549, Rating: 4.69},
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	svc := NewService(&fakeCompletion{}, &fakeSearcher{}, &fakeSessions{}, time.Second, 64)

	_, err := svc.Chat(context.Background(), ChatRequest{Message: "   "})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChatMintsSessionID(t *testing.T) {
	sessions := &fakeSessions{}
	svc := NewService(&fakeCompletion{reply: "hello"}, &fakeSearcher{}, sessions, time.Second, 64)

	reply, err := svc.Chat(context.Background(), ChatRequest{Message: "any phones?"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.SessionID == "" {
		t.Fatal("expected a minted session id")
	}
	if sessions.lastID != reply.SessionID {
		t.Errorf("turn recorded under %q, reply says %q", sessions.lastID, reply.SessionID)
	}
}

func TestChatKeepsCallerSessionID(t *testing.T) {
	svc := NewService(&fakeCompletion{reply: "hello"}, &fakeSearcher{}, &fakeSessions{}, time.Second, 64)

	reply, err := svc.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "any phones?"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.SessionID != "s1" {
		t.Errorf("expected session id s1, got %q", reply.SessionID)
	}
}

func TestChatFallsBackOnBackendError(t *testing.T) {
	svc := NewService(&fakeCompletion{err: errors.New("quota exceeded")}, &fakeSearcher{products: testProducts()}, &fakeSessions{}, time.Second, 64)

	reply, err := svc.Chat(context.Background(), ChatRequest{Message: "any phones?"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if !strings.Contains(reply.Reply, "iPhone 9") {
		t.Errorf("expected fallback reply naming the matched product, got %q", reply.Reply)
	}
	if len(reply.Products) != 1 {
		t.Errorf("expected matched products in the reply, got %d", len(reply.Products))
	}
}

func TestChatFallsBackOnTimeout(t *testing.T) {
	svc := NewService(&fakeCompletion{slow: true, reply: "late"}, &fakeSearcher{products: testProducts()}, &fakeSessions{}, 50*time.Millisecond, 64)

	start := time.Now()
	reply, err := svc.Chat(context.Background(), ChatRequest{Message: "any phones?"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
	if reply.Reply == "late" {
		t.Error("expected fallback instead of the late backend reply")
	}
}

func TestChatRecordsTurn(t *testing.T) {
	sessions := &fakeSessions{}
	svc := NewService(&fakeCompletion{reply: "sure"}, &fakeSearcher{products: testProducts()}, sessions, time.Second, 64)

	if _, err := svc.Chat(context.Background(), ChatRequest{SessionID: "s1", Message: "any phones?"}); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if sessions.recorded != 1 {
		t.Errorf("expected 1 recorded turn, got %d", sessions.recorded)
	}
}
