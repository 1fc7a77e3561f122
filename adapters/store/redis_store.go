package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/lumenpay/passgate/core"
	"github.com/lumenpay/passgate/ports"
)

// sessionKey is the fixed key the single session record lives under.
const sessionKey = "passgate:session"

// RedisStore is a Redis implementation of the SessionStore interface.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a new Redis session store.
func NewRedisStore(client *redis.Client) ports.SessionStore {
	return &RedisStore{
		client: client,
		key:    sessionKey,
	}
}

// Save validates the session and overwrites any existing record.
func (s *RedisStore) Save(ctx context.Context, session *core.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Load returns the saved session, or nil when none is saved. A record
// that no longer decodes is treated as absent, not surfaced as an error.
func (s *RedisStore) Load(ctx context.Context) (*core.Session, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session core.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, nil
	}
	if session.Validate() != nil {
		return nil, nil
	}
	return &session, nil
}

// IsActive reports whether a decodable session record is saved.
func (s *RedisStore) IsActive(ctx context.Context) (bool, error) {
	session, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

// Clear removes the session record; clearing twice is fine.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
