package session

import (
	"context"
	"sync"
	"time"

	"elaraMarket/domain"
	"elaraMarket/pkg/logger"
	"elaraMarket/pkg/metrics"
)

type entry struct {
	// guards the context value; per-session appends are serialized here so
	// concurrent requests sharing one session id do not lose updates
	mu  sync.Mutex
	ctx domain.SessionContext
}

// MemoryStore is the in-process TTL session store. Expiry is lazy on access;
// a periodic PurgeExpired sweep from main keeps abandoned sessions from
// accumulating.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*entry
	idleTimeout time.Duration
	now         func() time.Time
}

func NewMemoryStore(idleTimeout time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]*entry),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (domain.SessionContext, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionContext{}, false, err
	}

	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return domain.SessionContext{}, false, nil
	}

	e.mu.Lock()
	lastSeen := e.ctx.LastSeenAt
	snapshot := copyContext(e.ctx)
	e.mu.Unlock()

	if expired(lastSeen, s.idleTimeout, s.now()) {
		s.remove(sessionID)
		return domain.SessionContext{}, false, nil
	}

	return snapshot, true, nil
}

func (s *MemoryStore) Record(ctx context.Context, sessionID, query, response string, shown []uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := s.now()
	e := s.getOrCreate(sessionID, now)

	e.mu.Lock()
	defer e.mu.Unlock()

	if expired(e.ctx.LastSeenAt, s.idleTimeout, now) {
		// stale entry reused under the same id: start a fresh context
		e.ctx = newContext(sessionID, now)
	}

	e.ctx.Messages = capMessages(append(e.ctx.Messages, domain.SessionMessage{
		Query:     query,
		Response:  response,
		CreatedAt: now,
	}))
	if len(shown) > 0 {
		e.ctx.LastShownProducts = capShown(shown)
	}
	e.ctx.LastSeenAt = now

	return nil
}

func (s *MemoryStore) UpdatePreferences(ctx context.Context, sessionID string, prefs map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := s.now()
	e := s.getOrCreate(sessionID, now)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctx.Preferences == nil {
		e.ctx.Preferences = make(map[string]string, len(prefs))
	}
	for k, v := range prefs {
		e.ctx.Preferences[k] = v
	}
	e.ctx.LastSeenAt = now

	return nil
}

func (s *MemoryStore) PurgeExpired(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := s.now()

	s.mu.Lock()
	purged := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		stale := expired(e.ctx.LastSeenAt, s.idleTimeout, now)
		e.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			purged++
		}
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(remaining))
	if purged > 0 {
		logger.Info("purged expired sessions", "count", purged)
	}

	return purged, nil
}

func (s *MemoryStore) getOrCreate(sessionID string, now time.Time) *entry {
	s.mu.RLock()
	e, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.sessions[sessionID]; ok {
		return e
	}

	e = &entry{ctx: newContext(sessionID, now)}
	s.sessions[sessionID] = e
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	return e
}

func (s *MemoryStore) remove(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()
}

func newContext(sessionID string, now time.Time) domain.SessionContext {
	return domain.SessionContext{
		SessionID:  sessionID,
		CreatedAt:  now,
		LastSeenAt: now,
	}
}

func copyContext(c domain.SessionContext) domain.SessionContext {
	out := c
	out.Messages = append([]domain.SessionMessage(nil), c.Messages...)
	out.LastShownProducts = append([]uint64(nil), c.LastShownProducts...)
	if c.Preferences != nil {
		out.Preferences = make(map[string]string, len(c.Preferences))
		for k, v := range c.Preferences {
			out.Preferences[k] = v
		}
	}
	return out
}
