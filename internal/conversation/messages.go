// internal/conversation/messages.go
package conversation

import (
	"fmt"
	"strings"

	"places-bot/internal/domain"
	"places-bot/internal/util"
)

const (
	msgWelcome = "Hi! I save interesting places and show them on a map. " +
		"To get started I need your default city. Please type the name of your city:"
	msgCitySaved      = "Great! Your default city is set: %s"
	msgCityBlank      = "The city name can't be empty. Please type the name of your city:"
	msgPlaceFormat    = "Please send the place as: 'Place name - address'"
	msgCityRequired   = "Please set your default city first with /start"
	msgNotResolved    = "Could not resolve the address. Please check the spelling."
	msgStorageFailed  = "Could not save that right now. Please try again later."
	msgGenericFailure = "Something went wrong. Please try again later."
	msgNoPlaces       = "You have no saved places yet."
	msgNoMapPlaces    = "You have no places with coordinates to show on a map yet."
	msgMapCaption     = "Your places on the map (%d)"
	msgUnknownCommand = "Unknown command. Send /help to see what I can do."

	msgHelp = `Available commands:
/start - start over and set your default city
/help - show this message
/places - list your saved places
/map - show your places on a map

To add a place, send a message like:
Place name - address
For example: "Coffee Shop - Main St 5"`
)

// formatPlaces renders the /places listing.
func formatPlaces(places []domain.PlaceSummary) string {
	var b strings.Builder
	b.WriteString("Your saved places:\n\n")
	for _, p := range places {
		fmt.Fprintf(&b, "📍 %s\n🏠 %s\n\n", p.Name, p.Address)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatSaved confirms a stored place.
func formatSaved(p *domain.Place) string {
	text := fmt.Sprintf("Place saved:\n📍 %s\n🏠 %s", p.Name, p.Address)
	if coords, ok := p.Coordinates(); ok {
		text += "\n🌐 " + coords.String()
	}
	return text
}

// replyForError maps a failure to what the user is told.
func replyForError(err error) string {
	switch {
	case util.IsError(err, util.ErrMissingSeparator), util.IsError(err, util.ErrEmptyPlaceName):
		return msgPlaceFormat
	case util.IsError(err, util.ErrCityNotSet):
		return msgCityRequired
	case util.IsError(err, util.ErrAddressNotResolved):
		return msgNotResolved
	case util.IsError(err, util.ErrInvalidInput):
		return msgCityBlank
	case util.IsError(err, util.ErrNoPlaces):
		return msgNoMapPlaces
	case util.IsError(err, util.ErrStorage):
		return msgStorageFailed
	default:
		return msgGenericFailure
	}
}
