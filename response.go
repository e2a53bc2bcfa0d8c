package maru

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Response is what a handler hands back to the dispatcher to be sent.
type Response interface {
	chattable() tgbotapi.Chattable
}

type MessageResponse struct {
	config tgbotapi.MessageConfig
}

func NewMessage(chatID int64, text string) MessageResponse {
	return MessageResponse{
		config: tgbotapi.NewMessage(chatID, text),
	}
}

func NewMessageReplyTo(chatID int64, text string, replyToMessageID int) MessageResponse {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyToMessageID

	return MessageResponse{config: msg}
}

func (r MessageResponse) WithParseModeHTML() MessageResponse {
	r.config.ParseMode = tgbotapi.ModeHTML
	return r
}

func (r MessageResponse) WithReplyMarkup(markup tgbotapi.InlineKeyboardMarkup) MessageResponse {
	r.config.ReplyMarkup = markup
	return r
}

func (r MessageResponse) chattable() tgbotapi.Chattable {
	return r.config
}

type EditMessageResponse struct {
	config tgbotapi.Chattable
}

func NewEditMessageText(chatID int64, messageID int, text string) EditMessageResponse {
	return EditMessageResponse{
		config: tgbotapi.NewEditMessageText(chatID, messageID, text),
	}
}

func NewEditMessageTextAndReplyMarkup(chatID int64, messageID int, text string, replyMarkup tgbotapi.InlineKeyboardMarkup) EditMessageResponse {
	return EditMessageResponse{
		config: tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, replyMarkup),
	}
}

func NewEditMessageReplyMarkup(chatID int64, messageID int, replyMarkup tgbotapi.InlineKeyboardMarkup) EditMessageResponse {
	return EditMessageResponse{
		config: tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, replyMarkup),
	}
}

func (r EditMessageResponse) chattable() tgbotapi.Chattable {
	return r.config
}
