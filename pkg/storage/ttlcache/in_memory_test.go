package ttlcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryGetSet(t *testing.T) {
	cache := NewInMemoryTTLCache()

	value, err := cache.Get(t.Context(), "missing")
	require.NoError(t, err)
	assert.False(t, value.IsPresent())

	require.NoError(t, cache.Set(t.Context(), "key", "value", time.Minute))

	value, err = cache.Get(t.Context(), "key")
	require.NoError(t, err)
	assert.Equal(t, "value", value.OrEmpty())
}

func TestInMemoryExpiry(t *testing.T) {
	cache := NewInMemoryTTLCache()

	require.NoError(t, cache.Set(t.Context(), "key", "value", 10*time.Millisecond))

	assert.Eventually(t, func() bool {
		value, err := cache.Get(t.Context(), "key")
		return err == nil && !value.IsPresent()
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryIncr(t *testing.T) {
	cache := NewInMemoryTTLCache()

	for want := int64(1); want <= 3; want++ {
		counted, err := cache.Incr(t.Context(), "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, counted)
	}
}

func TestInMemoryTTL(t *testing.T) {
	cache := NewInMemoryTTLCache()

	remaining, err := cache.TTL(t.Context(), "missing")
	require.NoError(t, err)
	assert.Zero(t, remaining)

	_, err = cache.Incr(t.Context(), "counter", time.Minute)
	require.NoError(t, err)

	remaining, err = cache.TTL(t.Context(), "counter")
	require.NoError(t, err)
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, time.Minute)

	// later increments keep the original window
	_, err = cache.Incr(t.Context(), "counter", time.Hour)
	require.NoError(t, err)

	remaining, err = cache.TTL(t.Context(), "counter")
	require.NoError(t, err)
	assert.LessOrEqual(t, remaining, time.Minute)
}
