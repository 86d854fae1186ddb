package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Redis is a Redis-backed response cache so several webhook replicas can
// share answers. Values are stored as JSON under a common key prefix;
// Purge deletes by prefix, which keeps the reload contract (discard
// everything, never selectively) intact across replicas.
type Redis[V any] struct {
	client    *redis.Client
	keyPrefix string
}

// RedisOption represents an option for configuring the Redis cache
type RedisOption[V any] func(*Redis[V])

// WithKeyPrefix sets a custom prefix for cache keys
func WithKeyPrefix[V any](prefix string) RedisOption[V] {
	return func(r *Redis[V]) {
		r.keyPrefix = prefix
	}
}

// NewRedis creates a Redis-backed response cache
func NewRedis[V any](client *redis.Client, options ...RedisOption[V]) *Redis[V] {
	r := &Redis[V]{
		client:    client,
		keyPrefix: "syllabot:answers:",
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Get retrieves a cached value by key
func (r *Redis[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	raw, err := r.client.Get(ctx, r.keyPrefix+key).Result()
	if err != nil {
		// redis.Nil is an ordinary miss; anything else degrades to a miss
		// too, since the cache is an optimization, not a source of truth.
		return zero, false
	}

	var value V
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return zero, false
	}
	return value, true
}

// Put stores a value under key. Entries carry no TTL; they live until Purge
// or Redis-side eviction.
func (r *Redis[V]) Put(ctx context.Context, key string, value V) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := r.client.Set(ctx, r.keyPrefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Purge deletes every entry under the key prefix
func (r *Redis[V]) Purge(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.keyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Len counts entries under the key prefix
func (r *Redis[V]) Len(ctx context.Context) int {
	var cursor uint64
	count := 0
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.keyPrefix+"*", 100).Result()
		if err != nil {
			return count
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count
		}
	}
}
