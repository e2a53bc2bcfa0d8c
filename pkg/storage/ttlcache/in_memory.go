package ttlcache

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/mo"
)

var _ TTLCache = (*InMemoryTTLCache)(nil)

// InMemoryTTLCache is the default backend used when no Redis is configured.
// Good enough for a single process, gone on restart.
type InMemoryTTLCache struct {
	mutex sync.Mutex
	cache *cache.Cache
}

func NewInMemoryTTLCache() *InMemoryTTLCache {
	return &InMemoryTTLCache{
		cache: cache.New(cache.NoExpiration, time.Minute),
	}
}

func (c *InMemoryTTLCache) Get(_ context.Context, key string) (mo.Option[string], error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, found := c.cache.Get(key)
	if !found {
		return mo.None[string](), nil
	}

	str, ok := value.(string)
	if !ok {
		return mo.None[string](), nil
	}

	return mo.Some(str), nil
}

func (c *InMemoryTTLCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache.Set(key, value, ttl)

	return nil
}

func (c *InMemoryTTLCache) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, found := c.cache.Get(key); !found {
		c.cache.Set(key, int64(1), ttl)
		return 1, nil
	}

	return c.cache.IncrementInt64(key, 1)
}

func (c *InMemoryTTLCache) TTL(_ context.Context, key string) (time.Duration, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, expiresAt, found := c.cache.GetWithExpiration(key)
	if !found || expiresAt.IsZero() {
		return 0, nil
	}

	remaining := time.Until(expiresAt)
	if remaining < 0 {
		return 0, nil
	}

	return remaining, nil
}
