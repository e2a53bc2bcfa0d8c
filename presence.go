package maru

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// startPresenceRotation shows the first configured presence text right away
// and then rotates through the rest round-robin until the bot stops. A failed
// update is logged and skipped; the rotation keeps going.
func (b *Bot) startPresenceRotation() {
	if len(b.opts.presences) == 0 {
		return
	}

	go func() {
		index := 0
		b.setPresence(b.opts.presences[index])

		ticker := time.NewTicker(b.opts.presenceInterval)
		defer ticker.Stop()

		for {
			select {
			case <-b.stopChan:
				return
			case <-ticker.C:
				index = nextPresenceIndex(index, len(b.opts.presences))
				b.setPresence(b.opts.presences[index])
			}
		}
	}()
}

func nextPresenceIndex(current int, total int) int {
	if total <= 0 {
		return 0
	}

	return (current + 1) % total
}

// setPresence publishes text as the bot's short description, the closest
// Telegram equivalent of a status line.
func (b *Bot) setPresence(text string) {
	params := make(tgbotapi.Params)
	params.AddNonEmpty("short_description", text)

	b.Bot().MayMakeRequest("setMyShortDescription", params)
	b.logger.Debug("rotated bot presence", zap.String("presence", text))
}
