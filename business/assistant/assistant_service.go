package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"elaraMarket/business/search"
	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
	"elaraMarket/pkg/metrics"
)

// TextCompletion is the contract for the model backend. Implementations live
// in internal/repository/textcompletion.
type TextCompletion interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Searcher grounds the assistant's answers in live catalog results.
type Searcher interface {
	Search(ctx context.Context, req search.Request) ([]domain.Product, error)
}

// SessionStore carries the conversation across turns.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (domain.SessionContext, bool, error)
	Record(ctx context.Context, sessionID, query, response string, shown []uint64) error
}

type ChatRequest struct {
	SessionID string
	Message   string
}

type ChatReply struct {
	SessionID string
	Reply     string
	Products  []domain.Product
}

type Service struct {
	completion TextCompletion
	searcher   Searcher
	sessions   SessionStore
	timeout    time.Duration
	maxTokens  int
}

func NewService(completion TextCompletion, searcher Searcher, sessions SessionStore, timeout time.Duration, maxTokens int) *Service {
	return &Service{
		completion: completion,
		searcher:   searcher,
		sessions:   sessions,
		timeout:    timeout,
		maxTokens:  maxTokens,
	}
}

// suggestionLimit bounds how many products a single reply is grounded on.
const suggestionLimit = 5

// Chat answers one conversational turn. A blank session id mints a fresh
// session so the caller can continue the thread. The model backend is bounded
// by the configured timeout; any backend failure falls back to a catalog-only
// reply rather than an error.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (ChatReply, error) {
	if err := ctx.Err(); err != nil {
		return ChatReply{}, fmt.Errorf("context error: %w", err)
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ChatReply{}, fmt.Errorf("message must not be empty: %w", domain.ErrInvalidInput)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	products, err := s.searcher.Search(ctx, search.Request{
		Query:     message,
		Limit:     suggestionLimit,
		SessionID: sessionID,
	})
	if err != nil {
		logger.Warn("assistant product lookup failed", "session_id", sessionID, "error", err)
		products = nil
	}

	reply := s.generate(ctx, sessionID, message, products)

	if s.sessions != nil {
		shown := make([]uint64, 0, len(products))
		for _, p := range products {
			shown = append(shown, p.ID)
		}
		if err := s.sessions.Record(ctx, sessionID, message, reply, shown); err != nil {
			logger.Warn("failed to record assistant turn", "session_id", sessionID, "error", err)
		}
	}

	return ChatReply{
		SessionID: sessionID,
		Reply:     reply,
		Products:  products,
	}, nil
}

// generate asks the model backend for a reply, falling back to a canned
// catalog summary when the backend is missing, slow or broken.
func (s *Service) generate(ctx context.Context, sessionID, message string, products []domain.Product) string {
	if s.completion == nil {
		return fallbackReply(products)
	}

	modelCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := s.buildPrompt(ctx, sessionID, message, products)

	reply, err := s.completion.Complete(modelCtx, prompt, s.maxTokens)
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("model backend: %w", domain.ErrCollaboratorTimeout)
	}
	if err != nil || strings.TrimSpace(reply) == "" {
		metrics.AssistantFallbacks.Inc()
		logger.Warn("model backend failed, using fallback reply", "session_id", sessionID, "error", err)
		return fallbackReply(products)
	}

	return strings.TrimSpace(reply)
}

// buildPrompt assembles the shopping-assistant prompt from the recent
// conversation and the matched products.
func (s *Service) buildPrompt(ctx context.Context, sessionID, message string, products []domain.Product) string {
	var b strings.Builder

	b.WriteString("You are a shopping assistant for an online marketplace. ")
	b.WriteString("Answer briefly and only recommend products from the list below.\n")

	if s.sessions != nil {
		if sessCtx, ok, err := s.sessions.Get(ctx, sessionID); err == nil && ok && len(sessCtx.Messages) > 0 {
			b.WriteString("\nConversation so far:\n")
			for _, m := range sessCtx.Messages {
				fmt.Fprintf(&b, "Customer: %s\nAssistant: %s\n", m.Query, m.Response)
			}
		}
	}

	if len(products) > 0 {
		b.WriteString("\nMatching products:\n")
		for _, p := range products {
			fmt.Fprintf(&b, "- %s (%s), $%.2f, rating %.1f\n", p.Name, p.Brand, p.DiscountedPrice(), p.Rating)
		}
	} else {
		b.WriteString("\nNo products matched the customer's request.\n")
	}

	fmt.Fprintf(&b, "\nCustomer: %s\nAssistant:", message)

	return b.String()
}

func fallbackReply(products []domain.Product) string {
	if len(products) == 0 {
		return "I couldn't find anything matching that. Could you try different keywords?"
	}

	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, fmt.Sprintf("%s ($%.2f)", p.Name, p.DiscountedPrice()))
	}
	return "Here's what I found: " + strings.Join(names, ", ") + "."
}
