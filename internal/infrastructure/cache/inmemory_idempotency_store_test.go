package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	first, err := store.MarkProcessed(ctx, "evt-payment-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := store.MarkProcessed(ctx, "evt-payment-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, second, "live duplicate must not be treated as first delivery")
}

func TestInMemoryStore_ExpiredEntryIsReusable(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	first, err := store.MarkProcessed(ctx, "evt-receipt-1", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, first)

	time.Sleep(25 * time.Millisecond)

	again, err := store.MarkProcessed(ctx, "evt-receipt-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, again, "expired id should accept a fresh mark")
}

func TestInMemoryStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	processed, err := store.IsProcessed(ctx, "never-seen")
	require.NoError(t, err)
	assert.False(t, processed)

	_, err = store.MarkProcessed(ctx, "evt-closure-1", time.Hour)
	require.NoError(t, err)

	processed, err = store.IsProcessed(ctx, "evt-closure-1")
	require.NoError(t, err)
	assert.True(t, processed)

	_, err = store.MarkProcessed(ctx, "evt-closure-2", 10*time.Millisecond)
	require.NoError(t, err)
	time.Sleep(25 * time.Millisecond)

	processed, err = store.IsProcessed(ctx, "evt-closure-2")
	require.NoError(t, err)
	assert.False(t, processed, "expired id reads as unprocessed")
}

func TestInMemoryStore_SweepDropsExpired(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "stale-1", 5*time.Millisecond)
	require.NoError(t, err)
	_, err = store.MarkProcessed(ctx, "stale-2", 5*time.Millisecond)
	require.NoError(t, err)
	_, err = store.MarkProcessed(ctx, "fresh", time.Hour)
	require.NoError(t, err)
	require.Equal(t, 3, store.Size())

	time.Sleep(15 * time.Millisecond)
	store.sweep()

	assert.Equal(t, 1, store.Size())

	processed, err := store.IsProcessed(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestInMemoryStore_ConcurrentMarks(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	const workers = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	firsts := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			first, err := store.MarkProcessed(ctx, "contended-event", time.Hour)
			if err != nil {
				return
			}
			if first {
				mu.Lock()
				firsts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, firsts, "only one goroutine may win the first delivery")
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
