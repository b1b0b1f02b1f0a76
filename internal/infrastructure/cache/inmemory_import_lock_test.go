package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryImportLock(t *testing.T) {
	lock := NewInMemoryImportLock()
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "shop-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	// second acquisition of the same key is refused while the lease holds
	acquired, err = lock.Acquire(ctx, "shop-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	// a different key is independent
	acquired, err = lock.Acquire(ctx, "shop-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	// releasing frees the key
	require.NoError(t, lock.Release(ctx, "shop-1"))
	acquired, err = lock.Acquire(ctx, "shop-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestInMemoryImportLockExpiry(t *testing.T) {
	lock := NewInMemoryImportLock()
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "shop-1", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, acquired)

	time.Sleep(20 * time.Millisecond)

	// an expired lease no longer blocks
	acquired, err = lock.Acquire(ctx, "shop-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}
