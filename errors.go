package maru

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CooldownError is returned when a command is invoked while its cooldown
// window is still open.
type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("command is on cooldown, retry after %s", e.RetryAfter)
}

// CheckError is returned by a CheckFunc when the sender may not run the
// command in this chat. The reason is logged, never shown to the user.
type CheckError struct {
	Reason string
}

func (e *CheckError) Error() string {
	return "command check failed: " + e.Reason
}

// UsageError is returned when an invocation misses required arguments.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "invalid command invocation, usage: " + e.Usage
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// translateCommandError maps a failed command invocation onto a localized,
// user-facing reply. Every error lands on one of the fixed replies; nothing
// internal leaks to the chat.
func translateCommandError(c *Context, err error) string {
	var cooldownErr *CooldownError
	var checkErr *CheckError
	var usageErr *UsageError
	var platformErr *tgbotapi.Error

	switch {
	case errors.As(err, &cooldownErr):
		seconds := int64(math.Ceil(cooldownErr.RetryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}

		return c.T("bot.system.errors.cooldown", "Seconds", seconds)
	case errors.As(err, &usageErr):
		return c.T("bot.system.errors.usage", "Usage", usageErr.Usage)
	case errors.As(err, &checkErr):
		return c.T("bot.system.errors.check_failed")
	case isTimeoutError(err):
		return c.T("bot.system.errors.timeout")
	case errors.As(err, &platformErr):
		return c.T("bot.system.errors.platform")
	default:
		return c.T("bot.system.errors.internal")
	}
}

// expectedCommandError reports whether the error is part of normal operation
// (cooldowns, failed checks, bad invocations) rather than a bot defect.
func expectedCommandError(err error) bool {
	var cooldownErr *CooldownError
	var checkErr *CheckError
	var usageErr *UsageError

	return errors.As(err, &cooldownErr) || errors.As(err, &checkErr) || errors.As(err, &usageErr)
}
