package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPoolExecutesJobs(t *testing.T) {
	pool := NewPool(2, 8, zap.NewNop())
	require.NoError(t, pool.Start(context.Background()))

	var counter int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		require.NoError(t, pool.Submit(func(ctx context.Context) {
			defer wg.Done()
			atomic.AddInt32(&counter, 1)
		}))
	}
	wg.Wait()

	assert.Equal(t, int32(5), atomic.LoadInt32(&counter))
	require.NoError(t, pool.Stop(context.Background()))
}

func TestPoolSubmitWhenStopped(t *testing.T) {
	pool := NewPool(1, 1, zap.NewNop())

	err := pool.Submit(func(ctx context.Context) {})
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPoolQueueFull(t *testing.T) {
	pool := NewPool(1, 1, zap.NewNop())
	require.NoError(t, pool.Start(context.Background()))
	defer func() { _ = pool.Stop(context.Background()) }()

	block := make(chan struct{})
	// occupy the single worker
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		<-block
	}))

	// fill the queue, then the next submit must be refused
	var err error
	for i := 0; i < 3; i++ {
		err = pool.Submit(func(ctx context.Context) {})
		if err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, ErrQueueFull)
	close(block)
}

func TestPoolStopDrainsQueue(t *testing.T) {
	pool := NewPool(1, 8, zap.NewNop())
	require.NoError(t, pool.Start(context.Background()))

	var counter int32
	for i := 0; i < 4; i++ {
		require.NoError(t, pool.Submit(func(ctx context.Context) {
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&counter, 1)
		}))
	}

	require.NoError(t, pool.Stop(context.Background()))
	assert.Equal(t, int32(4), atomic.LoadInt32(&counter))

	// submits after stop are refused
	err := pool.Submit(func(ctx context.Context) {})
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPoolRecoversFromPanic(t *testing.T) {
	pool := NewPool(1, 8, zap.NewNop())
	require.NoError(t, pool.Start(context.Background()))

	done := make(chan struct{})
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		panic("job exploded")
	}))
	require.NoError(t, pool.Submit(func(ctx context.Context) {
		close(done)
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive the panic")
	}
	require.NoError(t, pool.Stop(context.Background()))
}
