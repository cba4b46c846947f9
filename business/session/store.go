package session

import (
	"context"
	"time"

	"elaraMarket/domain"
)

// Store is the conversation-context contract. The default implementation is
// the in-memory TTL store below; internal/repository/redis provides a
// redis-backed variant with the same semantics.
type Store interface {
	// Get returns the live context for a session. An expired session behaves
	// as if it never existed: (zero, false, nil), and the stale entry is
	// removed.
	Get(ctx context.Context, sessionID string) (domain.SessionContext, bool, error)

	// Record appends a conversation turn and replaces the last-shown product
	// ids, creating the session on first use. History is capped at
	// domain.SessionMaxMessages, shown ids at domain.SessionMaxShownProducts.
	Record(ctx context.Context, sessionID, query, response string, shown []uint64) error

	// UpdatePreferences merges the given preference pairs into the session.
	UpdatePreferences(ctx context.Context, sessionID string, prefs map[string]string) error

	// PurgeExpired removes every idle-expired session and reports how many.
	PurgeExpired(ctx context.Context) (int, error)
}

func capMessages(msgs []domain.SessionMessage) []domain.SessionMessage {
	if len(msgs) <= domain.SessionMaxMessages {
		return msgs
	}
	return msgs[len(msgs)-domain.SessionMaxMessages:]
}

func capShown(shown []uint64) []uint64 {
	if len(shown) <= domain.SessionMaxShownProducts {
		return shown
	}
	return shown[:domain.SessionMaxShownProducts]
}

func expired(lastSeen time.Time, idleTimeout time.Duration, now time.Time) bool {
	return now.Sub(lastSeen) > idleTimeout
}
