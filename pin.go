package maru

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type PinChatMessageConfig struct {
	ChatID              int64
	MessageID           int
	DisableNotification bool
}

func (c PinChatMessageConfig) method() string {
	return "pinChatMessage"
}

func (c PinChatMessageConfig) params() (tgbotapi.Params, error) {
	params := make(tgbotapi.Params)

	params.AddNonZero64("chat_id", c.ChatID)
	params.AddNonZero("message_id", c.MessageID)
	params.AddBool("disable_notification", c.DisableNotification)

	return params, nil
}

// UnpinChatMessageConfig unpins one message; zero MessageID unpins the most
// recent pin.
type UnpinChatMessageConfig struct {
	ChatID    int64
	MessageID int
}

func (c UnpinChatMessageConfig) method() string {
	return "unpinChatMessage"
}

func (c UnpinChatMessageConfig) params() (tgbotapi.Params, error) {
	params := make(tgbotapi.Params)

	params.AddNonZero64("chat_id", c.ChatID)
	params.AddNonZero("message_id", c.MessageID)

	return params, nil
}

func (b *BotAPI) PinChatMessage(config PinChatMessageConfig) error {
	params, err := config.params()
	if err != nil {
		return err
	}

	b.MayMakeRequest(config.method(), params)

	return err
}

func (b *BotAPI) UnpinChatMessage(config UnpinChatMessageConfig) error {
	params, err := config.params()
	if err != nil {
		return err
	}

	b.MayMakeRequest(config.method(), params)

	return err
}
