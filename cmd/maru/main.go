package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/rueidis"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/nekomeowww/xo/logger"

	"github.com/marubot/maru"
	"github.com/marubot/maru/cogs/admin"
	"github.com/marubot/maru/cogs/ping"
	"github.com/marubot/maru/cogs/quotes"
	"github.com/marubot/maru/internal/config"
	"github.com/marubot/maru/pkg/i18n"
	"github.com/marubot/maru/pkg/locales"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(
		logger.WithLevel(cfg.Log.ZapLevel()),
		logger.WithAppName("maru"),
		logger.WithNamespace("marubot"),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}

	defaultLanguage, err := language.Parse(cfg.I18n.DefaultLanguage)
	if err != nil {
		defaultLanguage = language.English
	}

	translator, err := i18n.NewI18n(
		i18n.WithDefaultLanguage(defaultLanguage),
		i18n.WithMessages(language.English, locales.RegisterEn()...),
		i18n.WithMessages(language.Korean, locales.RegisterKo()...),
	)
	if err != nil {
		log.Fatal("failed to build locales", zap.Error(err))
	}

	callOpts := []maru.CallOption{
		maru.WithToken(cfg.Telegram.Token),
		maru.WithLogger(log),
		maru.WithI18n(translator),
		maru.WithDispatcher(maru.NewDispatcher(log)),
		maru.WithPresences(cfg.Presence.RotateEvery, cfg.Presence.Texts...),
	}

	if cfg.Telegram.APIEndpoint != "" {
		callOpts = append(callOpts, maru.WithAPIEndpoint(cfg.Telegram.APIEndpoint))
	}
	if cfg.Telegram.WebhookURL != "" {
		callOpts = append(callOpts,
			maru.WithWebhookURL(cfg.Telegram.WebhookURL),
			maru.WithWebhookPort(cfg.Telegram.WebhookPort),
		)
	}
	if cfg.Redis.Addr != "" {
		client, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress:  []string{cfg.Redis.Addr},
			DisableCache: true,
		})
		if err != nil {
			log.Fatal("failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}

		defer client.Close()

		callOpts = append(callOpts, maru.WithRueidis(client))
	}

	bot, err := maru.NewBot(callOpts...)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}

	ctx := context.Background()

	bot.InstallPlugins(ctx,
		ping.New(),
		admin.New(),
		quotes.New(cfg.Quotes.DBPath),
	)

	err = bot.Bootstrap(ctx)
	if err != nil {
		log.Fatal("bot exited", zap.Error(err))
	}
}
