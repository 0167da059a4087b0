package notify

import (
	"context"
	"time"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	sendAttempts  = 3
	sendRetryWait = 2 * time.Second
)

// Telegram sends notifications as plain messages to a single chat.
type Telegram struct {
	bot    *tg.BotAPI
	chatID int64
	log    *zap.Logger
}

func NewTelegram(bot *tg.BotAPI, chatID int64, log *zap.Logger) *Telegram {
	return &Telegram{bot: bot, chatID: chatID, log: log}
}

// Send delivers the content, retrying a few times on transport errors.
func (t *Telegram) Send(ctx context.Context, c Content) error {
	msg := tg.NewMessage(t.chatID, c.Title+"\n\n"+c.Body)

	var lastErr error
	for i := 0; i < sendAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sendRetryWait):
			}
		}

		if _, lastErr = t.bot.Send(msg); lastErr == nil {
			return nil
		}
		t.log.Warn("failed to send notification, will retry",
			zap.Int("attempt", i+1), zap.Error(lastErr))
	}

	return errors.Wrap(lastErr, "failed to send notification")
}

// ChatGate reports whether the bot is allowed to message the configured chat.
// Reaching the chat is the daemon's equivalent of the mobile notification
// permission: if the probe fails, nothing gets scheduled.
type ChatGate struct {
	bot    *tg.BotAPI
	chatID int64
}

func NewChatGate(bot *tg.BotAPI, chatID int64) *ChatGate {
	return &ChatGate{bot: bot, chatID: chatID}
}

func (g *ChatGate) HasPermission() bool {
	_, err := g.bot.GetChat(tg.ChatInfoConfig{ChatConfig: tg.ChatConfig{ChatID: g.chatID}})
	return err == nil
}

// RequestPermission has nothing to prompt in a chat transport; it simply
// re-probes the chat.
func (g *ChatGate) RequestPermission() bool {
	return g.HasPermission()
}
