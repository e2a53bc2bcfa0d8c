package maru

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireCommandCooldown(t *testing.T) {
	bot := newTestBotAPI(t)

	for i := 0; i < 2; i++ {
		ok, retryAfter, err := bot.AcquireCommandCooldown(-100123, "ping", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, retryAfter)
	}

	ok, retryAfter, err := bot.AcquireCommandCooldown(-100123, "ping", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)
}

func TestAcquireCommandCooldownPerChat(t *testing.T) {
	bot := newTestBotAPI(t)

	ok, _, err := bot.AcquireCommandCooldown(-100123, "ping", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, err = bot.AcquireCommandCooldown(-100123, "ping", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	// another chat runs on its own window
	ok, _, err = bot.AcquireCommandCooldown(-100456, "ping", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// another command in the same chat too
	ok, _, err = bot.AcquireCommandCooldown(-100123, "quote", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAcquireCommandCooldownDisabled(t *testing.T) {
	bot := newTestBotAPI(t)

	for i := 0; i < 5; i++ {
		ok, retryAfter, err := bot.AcquireCommandCooldown(-100123, "ping", 0, 0)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Zero(t, retryAfter)
	}
}
