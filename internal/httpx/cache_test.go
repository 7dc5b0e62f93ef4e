package httpx

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache[string](time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestCacheExpires(t *testing.T) {
	c := NewCache[string](10 * time.Millisecond)
	c.Set("k", "v")

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheDelete(t *testing.T) {
	c := NewCache[string](time.Minute)
	c.Set("k", "v")
	c.Delete("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheGetOrLoadDeduplicatesConcurrentMisses(t *testing.T) {
	c := NewCache[int](time.Minute)
	var calls int32

	load := func(ctx context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	}

	results := make(chan int, 10)
	for i := 0; i < 10; i++ {
		go func() {
			v, err := c.GetOrLoad(context.Background(), "key", load)
			require.NoError(t, err)
			results <- v
		}()
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t, 42, <-results)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCacheGetOrLoadPropagatesError(t *testing.T) {
	c := NewCache[int](time.Minute)
	wantErr := assert.AnError

	_, err := c.GetOrLoad(context.Background(), "key", func(ctx context.Context) (int, error) {
		return 0, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	_, ok := c.Get("key")
	assert.False(t, ok, "a failed load must not populate the cache")
}
