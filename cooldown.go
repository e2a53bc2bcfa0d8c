package maru

import (
	"context"
	"strconv"
	"time"

	"github.com/marubot/maru/pkg/redis"
)

// AcquireCommandCooldown counts one invocation of command in chatID against
// its cooldown window and reports whether the invocation may proceed. When it
// may not, retryAfter carries the remaining window.
//
// Storage errors fail open: a broken cache should not silence the bot.
func (b *BotAPI) AcquireCommandCooldown(chatID int64, command string, rate int64, per time.Duration) (ok bool, retryAfter time.Duration, err error) {
	if rate <= 0 || per <= 0 {
		return true, 0, nil
	}

	key := redis.CommandCooldown3.Format(command, "telegram", strconv.FormatInt(chatID, 10))

	counted, err := b.ttlcache.Incr(context.Background(), key, per)
	if err != nil {
		return true, 0, err
	}
	if counted <= rate {
		return true, 0, nil
	}

	remaining, err := b.ttlcache.TTL(context.Background(), key)
	if err != nil || remaining <= 0 {
		remaining = per
	}

	return false, remaining, err
}
