package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryImportLock implements ImportLock with a process-local map.
// Used for single-node runs and tests; distributed deployments should use
// RedisImportLock instead.
type InMemoryImportLock struct {
	mu     sync.Mutex
	leases map[string]time.Time
}

// NewInMemoryImportLock creates an in-memory import lock
func NewInMemoryImportLock() *InMemoryImportLock {
	return &InMemoryImportLock{
		leases: make(map[string]time.Time),
	}
}

var _ ImportLock = (*InMemoryImportLock)(nil)

// Acquire takes the lease for key unless a non-expired lease exists
func (l *InMemoryImportLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expiry, held := l.leases[key]; held && now.Before(expiry) {
		return false, nil
	}
	l.leases[key] = now.Add(ttl)
	return true, nil
}

// Release drops the lease for key
func (l *InMemoryImportLock) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.leases, key)
	return nil
}
