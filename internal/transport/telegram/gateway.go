// internal/transport/telegram/gateway.go
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"places-bot/internal/domain"
)

// sender is the subset of *tgbotapi.BotAPI used for outbound calls.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Gateway sends replies through the Telegram Bot API.
type Gateway struct {
	bot sender
}

// NewGateway wraps a bot client.
func NewGateway(bot sender) *Gateway {
	return &Gateway{bot: bot}
}

// SendText sends a plain text message.
func (g *Gateway) SendText(ctx context.Context, chatID int64, text string) error {
	return g.send(ctx, tgbotapi.NewMessage(chatID, text))
}

// SendLocation sends the place as a venue, so name and address show next to the pin.
func (g *Gateway) SendLocation(ctx context.Context, chatID int64, place domain.GeocodedPlace) error {
	return g.send(ctx, tgbotapi.NewVenue(chatID, place.Name, place.Address, place.Latitude, place.Longitude))
}

// SendFile uploads the file at path as a document.
func (g *Gateway) SendFile(ctx context.Context, chatID int64, path, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	return g.send(ctx, doc)
}

func (g *Gateway) send(ctx context.Context, c tgbotapi.Chattable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := g.bot.Send(c); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
