// internal/domain/event.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlaceSaved is emitted after a place row is written.
type PlaceSaved struct {
	EventID    string    `json:"event_id"`
	UserID     int64     `json:"user_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewPlaceSaved builds the event for a stored place.
func NewPlaceSaved(p *Place) PlaceSaved {
	return PlaceSaved{
		EventID:    uuid.NewString(),
		UserID:     p.UserID,
		Name:       p.Name,
		Address:    p.Address,
		Latitude:   p.Latitude,
		Longitude:  p.Longitude,
		OccurredAt: time.Now().UTC(),
	}
}
