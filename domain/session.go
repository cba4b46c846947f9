package domain

import "time"

// Caps enforced by the session store; O(1) memory per session.
const (
	SessionMaxMessages      = 10
	SessionMaxShownProducts = 3
)

type SessionMessage struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionContext is the short-lived per-conversation memory used to
// personalize follow-up queries.
type SessionContext struct {
	SessionID         string            `json:"session_id"`
	Messages          []SessionMessage  `json:"messages"`
	LastShownProducts []uint64          `json:"last_shown_products,omitempty"`
	Preferences       map[string]string `json:"preferences,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	LastSeenAt        time.Time         `json:"last_seen_at"`
}
