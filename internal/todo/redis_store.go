package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed todo store. Lists never expire.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "todos:",
	}
}

func (r *RedisStore) key(userID string) string {
	return r.prefix + userID
}

func (r *RedisStore) List(ctx context.Context, userID string) ([]Item, error) {
	val, err := r.client.Get(ctx, r.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil // no list yet
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(val), &items); err != nil {
		return nil, fmt.Errorf("todo: failed to unmarshal list: %w", err)
	}

	return items, nil
}

func (r *RedisStore) Put(ctx context.Context, userID string, items []Item) error {
	if userID == "" {
		return fmt.Errorf("todo: missing user id")
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("todo: failed to marshal list: %w", err)
	}

	return r.client.Set(ctx, r.key(userID), data, 0).Err()
}

// Clear removes the whole list. Clearing an absent list is not an error.
func (r *RedisStore) Clear(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}
