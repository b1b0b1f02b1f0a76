// Package cache provides Redis-backed and in-memory coordination
// primitives, currently the per-shop import lock.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ImportLock provides per-shop mutual exclusion for catalog imports.
// Acquire returns false when another import for the same key is running.
type ImportLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisImportLock implements ImportLock on Redis SET NX leases. Suitable
// for multi-instance deployments sharing one Redis.
type RedisImportLock struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisImportLock creates a Redis-based import lock
func NewRedisImportLock(client *redis.Client) *RedisImportLock {
	return &RedisImportLock{
		client:    client,
		keyPrefix: "import:lock:",
	}
}

var _ ImportLock = (*RedisImportLock)(nil)

// Acquire takes the lease for key. The TTL bounds how long a crashed
// import can block subsequent ones.
func (l *RedisImportLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire import lock: %w", err)
	}
	return ok, nil
}

// Release drops the lease for key
func (l *RedisImportLock) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release import lock: %w", err)
	}
	return nil
}
