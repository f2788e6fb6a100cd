package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore persists session state in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a redis-backed store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get returns the state for a session, nil when absent.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		// stale or corrupt entry; treat as absent
		return nil, nil
	}
	return &state, nil
}

// Put stores state for a session.
func (s *RedisStore) Put(ctx context.Context, sessionID string, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

// Clear removes state for a session.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
