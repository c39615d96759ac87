package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/PaulSonOfLars/gotgbot/v2"

	"github.com/pyramide/event-api/internal/config"
)

type telegramAPI interface {
	SendMessage(chatId int64, text string, opts *gotgbot.SendMessageOpts) (*gotgbot.Message, error)
}

// Telegram posts operational alerts to a single chat.
type Telegram struct {
	api     telegramAPI
	chatID  int64
	timeout time.Duration
}

func NewTelegram(conf *config.TelegramConfig) (*Telegram, error) {
	bot, err := gotgbot.NewBot(conf.BotToken, &gotgbot.BotOpts{DisableTokenCheck: true})
	if err != nil {
		return nil, fmt.Errorf("gotgbot.NewBot -> %w", err)
	}

	return newTelegram(bot, conf.OpsChatID, conf.Timeout), nil
}

func newTelegram(api telegramAPI, chatID int64, timeout time.Duration) *Telegram {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Telegram{
		api:     api,
		chatID:  chatID,
		timeout: timeout,
	}
}

// Alert sends text to the ops chat. The request is bounded by the configured
// timeout or ctx, whichever ends first.
func (t *Telegram) Alert(ctx context.Context, text string) error {
	timeout := t.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	_, err := t.api.SendMessage(t.chatID, text, &gotgbot.SendMessageOpts{
		RequestOpts: &gotgbot.RequestOpts{Timeout: timeout},
	})
	if err != nil {
		return fmt.Errorf("t.api.SendMessage -> %w", err)
	}

	return nil
}
