package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds everything the bot binary needs at startup. Values come from
// MARU_-prefixed environment variables, optionally seeded from a local .env
// file. The token is the only required value.
type Config struct {
	Telegram TelegramConfig
	Redis    RedisConfig
	Log      LogConfig
	I18n     I18nConfig
	Presence PresenceConfig
	Quotes   QuotesConfig
}

type TelegramConfig struct {
	Token       string
	APIEndpoint string `mapstructure:"api_endpoint"`
	WebhookURL  string `mapstructure:"webhook_url"`
	WebhookPort string `mapstructure:"webhook_port"`
}

type RedisConfig struct {
	Addr string
}

type LogConfig struct {
	Level string
}

// ZapLevel parses the configured level, falling back to info on nonsense.
func (c LogConfig) ZapLevel() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}

	return level
}

type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

type PresenceConfig struct {
	Texts       []string
	RotateEvery time.Duration `mapstructure:"rotate_every"`
}

type QuotesConfig struct {
	DBPath string `mapstructure:"db_path"`
}

var ErrMissingToken = errors.New("telegram bot token is not configured, set MARU_TELEGRAM_TOKEN (or TELEGRAM_BOT_TOKEN) in the environment or a .env file")

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first, without overriding variables already set.
func Load() (Config, error) {
	_ = gotenv.Load()

	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("i18n.default_language", "en")
	v.SetDefault("presence.texts", []string{"/help", "listening for commands", "contact: ops@marubot.dev"})
	v.SetDefault("presence.rotate_every", 5*time.Minute)
	v.SetDefault("quotes.db_path", "maru.db")
	v.SetDefault("telegram.webhook_port", "8443")

	v.SetEnvPrefix("MARU")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// the conventional variable name works too
	_ = v.BindEnv("telegram.token", "MARU_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN")

	// keys without defaults have to be bound for Unmarshal to see them
	_ = v.BindEnv("telegram.api_endpoint")
	_ = v.BindEnv("telegram.webhook_url")
	_ = v.BindEnv("redis.addr")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}

	if c.Telegram.Token == "" {
		return Config{}, ErrMissingToken
	}

	return c, nil
}
