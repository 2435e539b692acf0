// internal/transport/telegram/poller.go
package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"places-bot/internal/conversation"
)

// DefaultPollTimeout is the long-polling timeout in seconds.
const DefaultPollTimeout = 60

// updateSource is the subset of *tgbotapi.BotAPI used for receiving updates.
type updateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// DispatchFunc accepts an inbound message; it reports false when the
// message could not be queued.
type DispatchFunc func(ctx context.Context, msg conversation.Message) bool

// Poller long-polls Telegram for updates and forwards text messages.
type Poller struct {
	bot     updateSource
	timeout int
	logger  *slog.Logger
}

// NewPoller creates a Poller.
func NewPoller(bot updateSource, logger *slog.Logger) *Poller {
	return &Poller{bot: bot, timeout: DefaultPollTimeout, logger: logger}
}

// Run forwards updates to dispatch until ctx is cancelled or the update
// channel closes. Dispatched messages get a context that keeps ctx's values
// but not its cancellation.
func (p *Poller) Run(ctx context.Context, dispatch DispatchFunc) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = p.timeout
	updates := p.bot.GetUpdatesChan(cfg)
	defer p.bot.StopReceivingUpdates()

	p.logger.Info("Polling for updates")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Stopped polling for updates")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg, ok := toMessage(update)
			if !ok {
				continue
			}
			// Queued messages still run to completion after polling stops.
			if !dispatch(context.WithoutCancel(ctx), msg) {
				p.logger.Warn("Dropped update during shutdown", "update_id", update.UpdateID, "user_id", msg.UserID)
			}
		}
	}
}

// toMessage keeps text messages from users and drops everything else.
func toMessage(update tgbotapi.Update) (conversation.Message, bool) {
	m := update.Message
	if m == nil || m.From == nil || m.Chat == nil || m.Text == "" {
		return conversation.Message{}, false
	}
	return conversation.Message{
		UserID: m.From.ID,
		ChatID: m.Chat.ID,
		Text:   m.Text,
	}, true
}
