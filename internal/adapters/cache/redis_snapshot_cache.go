package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotCache stores raw directory payloads in Redis with a TTL
// enforced by the server.
type RedisSnapshotCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{Client: client, TTL: ttl}
}

func (r *RedisSnapshotCache) key(resource string) string {
	return "directory:" + resource
}

func (r *RedisSnapshotCache) GetPayload(ctx context.Context, resource string) ([]byte, bool, error) {
	if r.Client == nil {
		return nil, false, errors.New("snapshot cache: redis client is nil")
	}

	if resource == "" {
		return nil, false, errors.New("get snapshot cache: resource must not be empty")
	}

	payload, err := r.Client.Get(ctx, r.key(resource)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot cache: redis get: %w", err)
	}

	return payload, true, nil
}

func (r *RedisSnapshotCache) PutPayload(ctx context.Context, resource string, payload []byte) error {
	if r.Client == nil {
		return errors.New("snapshot cache: redis client is nil")
	}

	if resource == "" {
		return errors.New("insert snapshot cache: resource must not be empty")
	}

	if err := r.Client.Set(ctx, r.key(resource), payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert snapshot cache resource=%q: %w", resource, err)
	}

	return nil
}
