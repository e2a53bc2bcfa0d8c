package ttlcache

import (
	"context"
	"time"

	"github.com/samber/mo"
)

// TTLCache is the expiring key-value store the bot keeps its short-lived
// state in: callback query payloads, command cooldown windows and the like.
//
// Incr creates the window on first increment and leaves the expiry untouched
// afterwards. TTL reports the remaining lifetime of a key, zero when the key
// is missing or never expires.
type TTLCache interface {
	Get(context.Context, string) (mo.Option[string], error)
	Set(context.Context, string, string, time.Duration) error
	Incr(context.Context, string, time.Duration) (int64, error)
	TTL(context.Context, string) (time.Duration, error)
}
