package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhojin7/my-cloudflare-oauth-app/internal/auth"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisStore) Create(
	ctx context.Context,
	sessionID string,
	profile auth.Profile,
	ttl time.Duration,
) error {
	if sessionID == "" {
		return fmt.Errorf("session: missing session id")
	}
	if ttl <= 0 {
		return fmt.Errorf("session: ttl must be positive")
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("session: failed to marshal profile: %w", err)
	}

	return r.client.Set(ctx, r.key(sessionID), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, sessionID string) (*auth.Profile, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil // not found or expired
	}
	if err != nil {
		return nil, err
	}

	var profile auth.Profile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}

// Delete is idempotent: deleting an absent key is not an error.
func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}
