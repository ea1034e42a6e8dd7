package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"hostpanel/internal/config"
)

// Telegram sends operator alerts to a fixed admin chat. A nil *Telegram is a
// disabled notifier; all methods are safe to call on it.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

func NewTelegram(cfg *config.Config, logger *zap.Logger) (*Telegram, error) {
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken == "" {
		logger.Info("Telegram notifier is disabled (telegram.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram notifier authorized", zap.String("username", botAPI.Self.UserName))

	return &Telegram{
		api:    botAPI,
		chatID: cfg.Telegram.AdminChatID,
		logger: logger,
	}, nil
}

func (t *Telegram) Notify(msg string) {
	if t == nil {
		return
	}
	if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, msg)); err != nil {
		t.logger.Error("Failed to send Telegram notification", zap.Error(err))
	}
}
