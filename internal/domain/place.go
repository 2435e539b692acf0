// internal/domain/place.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Coordinates is a WGS84 point. Places carry either a full pair or none.
type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// String renders the pair with six fixed decimals (~0.1m).
func (c Coordinates) String() string {
	return fmt.Sprintf("%s, %s",
		decimal.NewFromFloat(c.Lat).StringFixed(6),
		decimal.NewFromFloat(c.Lon).StringFixed(6),
	)
}

// Place is a named, user-owned location record.
type Place struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"place_name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Latitude  *float64  `db:"latitude" json:"latitude,omitempty"`
	Longitude *float64  `db:"longitude" json:"longitude,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewPlace creates a Place. coords may be nil when geocoding produced no point.
func NewPlace(userID int64, name, address string, coords *Coordinates) *Place {
	p := &Place{
		UserID:  userID,
		Name:    name,
		Address: address,
	}
	if coords != nil {
		lat, lon := coords.Lat, coords.Lon
		p.Latitude = &lat
		p.Longitude = &lon
	}
	return p
}

// Coordinates returns the point if both halves are present.
func (p *Place) Coordinates() (Coordinates, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *p.Latitude, Lon: *p.Longitude}, true
}

// PlaceSummary is a row of the plain listing.
type PlaceSummary struct {
	Name    string `db:"place_name" json:"name"`
	Address string `db:"address" json:"address"`
}

// GeocodedPlace is a row of the geocoded listing; both coordinates are present.
type GeocodedPlace struct {
	Name      string  `db:"place_name" json:"name"`
	Address   string  `db:"address" json:"address"`
	Latitude  float64 `db:"latitude" json:"latitude"`
	Longitude float64 `db:"longitude" json:"longitude"`
}
