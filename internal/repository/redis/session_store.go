package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"elaraMarket/domain"
	"elaraMarket/pkg/metrics"
)

// SessionStore keeps conversation contexts in redis with the idle timeout
// mapped onto native key TTLs, so expiry needs no sweeper of its own.
type SessionStore struct {
	client      *redis.Client
	idleTimeout time.Duration
}

func NewSessionStore(client *redis.Client, idleTimeout time.Duration) *SessionStore {
	return &SessionStore{
		client:      client,
		idleTimeout: idleTimeout,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:ctx:%s", sessionID)
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.SessionContext, bool, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return domain.SessionContext{}, false, nil
		}
		return domain.SessionContext{}, false, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var sessCtx domain.SessionContext
	if err := json.Unmarshal([]byte(val), &sessCtx); err != nil {
		return domain.SessionContext{}, false, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return sessCtx, true, nil
}

func (s *SessionStore) Record(ctx context.Context, sessionID, query, response string, shown []uint64) error {
	now := time.Now()

	sessCtx, ok, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		sessCtx = domain.SessionContext{
			SessionID:   sessionID,
			Preferences: make(map[string]string),
			CreatedAt:   now,
		}
	}

	sessCtx.Messages = append(sessCtx.Messages, domain.SessionMessage{
		Query:     query,
		Response:  response,
		CreatedAt: now,
	})
	if len(sessCtx.Messages) > domain.SessionMaxMessages {
		sessCtx.Messages = sessCtx.Messages[len(sessCtx.Messages)-domain.SessionMaxMessages:]
	}

	if len(shown) > domain.SessionMaxShownProducts {
		shown = shown[:domain.SessionMaxShownProducts]
	}
	sessCtx.LastShownProducts = shown
	sessCtx.LastSeenAt = now

	return s.save(ctx, sessCtx, s.idleTimeout)
}

func (s *SessionStore) UpdatePreferences(ctx context.Context, sessionID string, prefs map[string]string) error {
	sessCtx, ok, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if sessCtx.Preferences == nil {
		sessCtx.Preferences = make(map[string]string)
	}
	for k, v := range prefs {
		sessCtx.Preferences[k] = v
	}

	// preference updates are not conversation activity, keep the current TTL
	return s.save(ctx, sessCtx, redis.KeepTTL)
}

// PurgeExpired is a no-op for removal since redis drops expired keys itself;
// it only refreshes the active-session gauge from a key scan.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, sessionKey("*"), 100).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan sessions: %w", err)
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	metrics.ActiveSessions.Set(float64(total))
	return 0, nil
}

func (s *SessionStore) save(ctx context.Context, sessCtx domain.SessionContext, ttl time.Duration) error {
	jsonData, err := json.Marshal(sessCtx)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	err = s.client.Set(ctx, sessionKey(sessCtx.SessionID), jsonData, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}
