package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MARU_TELEGRAM_TOKEN", "123456:test-token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123456:test-token", cfg.Telegram.Token)
	assert.Equal(t, "8443", cfg.Telegram.WebhookPort)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
	assert.Equal(t, "maru.db", cfg.Quotes.DBPath)
	assert.Equal(t, 5*time.Minute, cfg.Presence.RotateEvery)
	assert.NotEmpty(t, cfg.Presence.Texts)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MARU_TELEGRAM_TOKEN", "123456:test-token")
	t.Setenv("MARU_TELEGRAM_API_ENDPOINT", "https://tg.example.com")
	t.Setenv("MARU_TELEGRAM_WEBHOOK_URL", "https://bot.example.com/webhook")
	t.Setenv("MARU_TELEGRAM_WEBHOOK_PORT", "9443")
	t.Setenv("MARU_REDIS_ADDR", "localhost:6379")
	t.Setenv("MARU_LOG_LEVEL", "debug")
	t.Setenv("MARU_I18N_DEFAULT_LANGUAGE", "ko")
	t.Setenv("MARU_QUOTES_DB_PATH", "/tmp/quotes.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://tg.example.com", cfg.Telegram.APIEndpoint)
	assert.Equal(t, "https://bot.example.com/webhook", cfg.Telegram.WebhookURL)
	assert.Equal(t, "9443", cfg.Telegram.WebhookPort)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "ko", cfg.I18n.DefaultLanguage)
	assert.Equal(t, "/tmp/quotes.db", cfg.Quotes.DBPath)
}

func TestLoadConventionalTokenVariable(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:conventional")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "123456:conventional", cfg.Telegram.Token)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("MARU_TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, LogConfig{Level: "debug"}.ZapLevel())
	assert.Equal(t, zapcore.WarnLevel, LogConfig{Level: "warn"}.ZapLevel())
	assert.Equal(t, zapcore.InfoLevel, LogConfig{Level: ""}.ZapLevel())
	assert.Equal(t, zapcore.InfoLevel, LogConfig{Level: "nonsense"}.ZapLevel())
}
