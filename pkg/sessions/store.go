package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vantagesuite/vantage/internal/domain"
)

// ErrNotFound is returned when no session exists for the given ID.
var ErrNotFound = errors.New("session not found")

// CookieName is the session identifier cookie each service sets on its own
// domain.
const CookieName = "vantage_session"

// Store keeps per-browser session state in Redis, keyed by the session ID
// cookie. Entries expire on their own via TTL.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redisClient, ttl: ttl}
}

func key(sessionID string) string {
	return fmt.Sprintf("session:browser:%s", sessionID)
}

// Put stores session data under the given ID, resetting its TTL.
func (s *Store) Put(ctx context.Context, sessionID string, data *domain.SessionData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.redis.Set(ctx, key(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Get loads the session for the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.SessionData, error) {
	payload, err := s.redis.Get(ctx, key(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var data domain.SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &data, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
