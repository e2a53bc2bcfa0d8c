package ttlcache

import (
	"context"
	"time"

	"github.com/redis/rueidis"
	"github.com/samber/mo"
)

var _ TTLCache = (*RueidisTTLCache)(nil)

// RueidisTTLCache keeps the short-lived state in Redis so that cooldowns and
// callback query payloads survive restarts and are shared between replicas.
type RueidisTTLCache struct {
	rueidis rueidis.Client
}

func NewRueidisTTLCache(client rueidis.Client) *RueidisTTLCache {
	return &RueidisTTLCache{
		rueidis: client,
	}
}

func (c *RueidisTTLCache) Get(ctx context.Context, key string) (mo.Option[string], error) {
	getCmd := c.rueidis.B().
		Get().
		Key(key).
		Build()

	str, err := c.rueidis.Do(ctx, getCmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return mo.None[string](), nil
		}

		return mo.None[string](), err
	}

	return mo.Some(str), nil
}

func (c *RueidisTTLCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	setCmd := c.rueidis.B().
		Set().
		Key(key).
		Value(value).
		ExSeconds(int64(ttl.Seconds())).
		Build()

	return c.rueidis.Do(ctx, setCmd).Error()
}

func (c *RueidisTTLCache) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	incrCmd := c.rueidis.B().
		Incr().
		Key(key).
		Build()

	counted, err := c.rueidis.Do(ctx, incrCmd).AsInt64()
	if err != nil {
		return 0, err
	}

	// the first increment opens the window
	if counted == 1 {
		expireCmd := c.rueidis.B().
			Expire().
			Key(key).
			Seconds(int64(ttl.Seconds())).
			Build()

		err = c.rueidis.Do(ctx, expireCmd).Error()
		if err != nil {
			return counted, err
		}
	}

	return counted, nil
}

func (c *RueidisTTLCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttlCmd := c.rueidis.B().
		Ttl().
		Key(key).
		Build()

	seconds, err := c.rueidis.Do(ctx, ttlCmd).AsInt64()
	if err != nil {
		return 0, err
	}
	if seconds < 0 {
		return 0, nil
	}

	return time.Duration(seconds) * time.Second, nil
}
