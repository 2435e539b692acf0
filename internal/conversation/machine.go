// internal/conversation/machine.go
package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"places-bot/internal/domain"
	"places-bot/internal/maprender"
	"places-bot/internal/service"
)

// Gateway is the outbound side of the messaging transport.
type Gateway interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendLocation(ctx context.Context, chatID int64, place domain.GeocodedPlace) error
	SendFile(ctx context.Context, chatID int64, path, caption string) error
}

// MapRenderer renders a user's map and hands the artifact to deliver.
// *maprender.Renderer implements it.
type MapRenderer interface {
	Render(ctx context.Context, userID int64, deliver maprender.DeliverFunc) ([]domain.GeocodedPlace, error)
}

const (
	cmdStart  = "/start"
	cmdHelp   = "/help"
	cmdPlaces = "/places"
	cmdMap    = "/map"
)

// Machine interprets inbound messages according to each user's state.
// It is safe for concurrent use across users; callers must serialize
// messages of the same user (see Dispatcher).
type Machine struct {
	states  *StateTable
	users   service.UserService
	places  service.PlaceService
	maps    MapRenderer
	gateway Gateway
	logger  *slog.Logger
}

// NewMachine wires a Machine.
func NewMachine(
	states *StateTable,
	users service.UserService,
	places service.PlaceService,
	maps MapRenderer,
	gateway Gateway,
	logger *slog.Logger,
) *Machine {
	return &Machine{
		states:  states,
		users:   users,
		places:  places,
		maps:    maps,
		gateway: gateway,
		logger:  logger,
	}
}

// Handle processes one message. Failures are logged and answered; a panic in
// one user's flow is recovered here.
func (m *Machine) Handle(ctx context.Context, msg Message) {
	defer func() {
		if r := recover(); r != nil {
			recordPanic()
			m.logger.Error("Recovered panic in message handler", "user_id", msg.UserID, "panic", r)
			m.reply(ctx, msg, msgGenericFailure)
		}
	}()

	if cmd, ok := parseCommand(msg.Text); ok {
		recordMessage(cmd)
		m.handleCommand(ctx, msg, cmd)
		return
	}

	switch m.states.Get(msg.UserID) {
	case StateAwaitingCity:
		recordMessage(kindCity)
		m.handleCity(ctx, msg)
	default:
		recordMessage(kindPlace)
		m.handlePlace(ctx, msg)
	}
}

// parseCommand extracts "/cmd" from text, dropping arguments and a
// "@botname" suffix.
func parseCommand(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), true
}

func (m *Machine) handleCommand(ctx context.Context, msg Message, cmd string) {
	switch cmd {
	case cmdStart:
		m.handleStart(ctx, msg)
	case cmdHelp:
		m.reply(ctx, msg, msgHelp)
	case cmdPlaces:
		m.handleList(ctx, msg)
	case cmdMap:
		m.handleMap(ctx, msg)
	default:
		m.reply(ctx, msg, msgUnknownCommand)
	}
}

func (m *Machine) handleStart(ctx context.Context, msg Message) {
	if err := m.users.RegisterUser(ctx, msg.UserID); err != nil {
		m.fail(ctx, msg, "start", err)
		return
	}
	m.states.Set(msg.UserID, StateAwaitingCity)
	m.reply(ctx, msg, msgWelcome)
}

func (m *Machine) handleCity(ctx context.Context, msg Message) {
	city, err := m.users.SetCity(ctx, msg.UserID, msg.Text)
	if err != nil {
		// State stays AwaitingCity so the next reply is taken as the city again.
		m.fail(ctx, msg, "set city", err)
		return
	}
	m.states.Set(msg.UserID, StateIdle)
	m.logger.Info("Default city set", "user_id", msg.UserID)
	m.reply(ctx, msg, fmt.Sprintf(msgCitySaved, city))
}

func (m *Machine) handlePlace(ctx context.Context, msg Message) {
	place, err := m.places.AddPlace(ctx, msg.UserID, msg.Text)
	if err != nil {
		m.fail(ctx, msg, "add place", err)
		return
	}
	m.logger.Info("Place saved", "user_id", msg.UserID, "place_id", place.ID)
	m.reply(ctx, msg, formatSaved(place))
}

func (m *Machine) handleList(ctx context.Context, msg Message) {
	places, err := m.places.ListPlaces(ctx, msg.UserID)
	if err != nil {
		m.fail(ctx, msg, "list places", err)
		return
	}
	if len(places) == 0 {
		m.reply(ctx, msg, msgNoPlaces)
		return
	}
	m.reply(ctx, msg, formatPlaces(places))
}

func (m *Machine) handleMap(ctx context.Context, msg Message) {
	points, err := m.maps.Render(ctx, msg.UserID, func(ctx context.Context, a maprender.Artifact) error {
		return m.gateway.SendFile(ctx, msg.ChatID, a.Path, fmt.Sprintf(msgMapCaption, len(a.Points)))
	})
	if err != nil {
		m.fail(ctx, msg, "map", err)
		return
	}
	for _, p := range points {
		if err := m.gateway.SendLocation(ctx, msg.ChatID, p); err != nil {
			m.logger.Warn("Failed to send location", "user_id", msg.UserID, "place", p.Name, "error", err)
		}
	}
}

// fail logs err and answers with the matching user-facing text.
func (m *Machine) fail(ctx context.Context, msg Message, op string, err error) {
	reply := replyForError(err)
	if reply == msgGenericFailure || reply == msgStorageFailed {
		m.logger.Error("Failed to handle message", "op", op, "user_id", msg.UserID, "error", err)
	} else {
		m.logger.Info("Rejected message", "op", op, "user_id", msg.UserID, "reason", err)
	}
	m.reply(ctx, msg, reply)
}

func (m *Machine) reply(ctx context.Context, msg Message, text string) {
	if err := m.gateway.SendText(ctx, msg.ChatID, text); err != nil {
		m.logger.Error("Failed to send reply", "user_id", msg.UserID, "error", err)
	}
}
