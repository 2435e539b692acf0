// internal/transport/telegram/telegram_test.go
package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"places-bot/internal/conversation"
	"places-bot/internal/domain"
	"places-bot/internal/util"
)

type stubBot struct {
	sent    []tgbotapi.Chattable
	err     error
	updates chan tgbotapi.Update
	stopped bool
	mu      sync.Mutex
}

func (b *stubBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, b.err
}

func (b *stubBot) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *stubBot) StopReceivingUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

func TestGateway(t *testing.T) {
	ctx := context.Background()
	bot := &stubBot{}
	g := NewGateway(bot)

	require.NoError(t, g.SendText(ctx, 10, "hello"))
	require.NoError(t, g.SendLocation(ctx, 10, domain.GeocodedPlace{Name: "Cafe", Address: "Main St 5", Latitude: 1.5, Longitude: 2.5}))
	require.NoError(t, g.SendFile(ctx, 10, "/tmp/map-10-1/places.html", "Your places"))
	require.Len(t, bot.sent, 3)

	text, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(10), text.ChatID)
	assert.Equal(t, "hello", text.Text)

	venue, ok := bot.sent[1].(tgbotapi.VenueConfig)
	require.True(t, ok)
	assert.Equal(t, "Cafe", venue.Title)
	assert.Equal(t, "Main St 5", venue.Address)
	assert.Equal(t, 1.5, venue.Latitude)
	assert.Equal(t, 2.5, venue.Longitude)

	doc, ok := bot.sent[2].(tgbotapi.DocumentConfig)
	require.True(t, ok)
	assert.Equal(t, "Your places", doc.Caption)
	assert.Equal(t, tgbotapi.FilePath("/tmp/map-10-1/places.html"), doc.File)
}

func TestGatewayErrors(t *testing.T) {
	bot := &stubBot{err: errors.New("Forbidden: bot was blocked by the user")}
	g := NewGateway(bot)
	assert.ErrorContains(t, g.SendText(context.Background(), 1, "hi"), "blocked")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.SendText(ctx, 1, "hi"), context.Canceled)
	assert.Len(t, bot.sent, 1)
}

func TestPoller(t *testing.T) {
	bot := &stubBot{updates: make(chan tgbotapi.Update, 4)}
	bot.updates <- tgbotapi.Update{UpdateID: 1, Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7}, Chat: &tgbotapi.Chat{ID: 70}, Text: "/start",
	}}
	bot.updates <- tgbotapi.Update{UpdateID: 2}
	bot.updates <- tgbotapi.Update{UpdateID: 3, Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 7}, Chat: &tgbotapi.Chat{ID: 70},
	}}
	bot.updates <- tgbotapi.Update{UpdateID: 4, Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: 8}, Chat: &tgbotapi.Chat{ID: 80}, Text: "Cafe - Main St 5",
	}}
	close(bot.updates)

	var got []conversation.Message
	p := NewPoller(bot, util.DiscardLogger())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(context.Background(), func(ctx context.Context, msg conversation.Message) bool {
			got = append(got, msg)
			return true
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after the update channel closed")
	}

	assert.Equal(t, []conversation.Message{
		{UserID: 7, ChatID: 70, Text: "/start"},
		{UserID: 8, ChatID: 80, Text: "Cafe - Main St 5"},
	}, got)
	assert.True(t, bot.stopped)
}

func TestPollerStopsOnCancel(t *testing.T) {
	bot := &stubBot{updates: make(chan tgbotapi.Update)}
	p := NewPoller(bot, util.DiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx, func(ctx context.Context, msg conversation.Message) bool { return true })
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}
