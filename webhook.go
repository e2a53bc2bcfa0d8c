package maru

import (
	"encoding/json"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func newWebhookServer(path string, port string, bot *tgbotapi.BotAPI, updateChan chan tgbotapi.Update) *http.Server {
	if path == "" {
		path = "/"
	}

	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		update, err := bot.HandleUpdate(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)

			body, _ := json.Marshal(map[string]string{"error": err.Error()})
			_, _ = w.Write(body)

			return
		}

		updateChan <- *update
	})

	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func setWebhook(webhookURL string, bot *tgbotapi.BotAPI) error {
	webhookConfig, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return err
	}

	_, err = bot.Request(webhookConfig)

	return err
}
