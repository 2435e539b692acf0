// internal/geocoding/resolver.go
package geocoding

import (
	"context"
	"fmt"

	"places-bot/internal/domain"
)

// Mode selects what a successful lookup contributes to a stored place.
type Mode string

const (
	// ModeCoordinates stores the composed address plus coordinates.
	ModeCoordinates Mode = "coordinates"
	// ModeAddress stores the provider's formatted address without coordinates.
	ModeAddress Mode = "address"
)

// ParseMode validates a configured mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCoordinates, ModeAddress:
		return Mode(s), nil
	case "":
		return ModeCoordinates, nil
	default:
		return "", fmt.Errorf("unknown geocoder mode %q", s)
	}
}

// Resolution is what gets persisted for a resolved address.
type Resolution struct {
	Address     string
	Coordinates *domain.Coordinates
}

// Resolver applies the configured Mode on top of a Client.
type Resolver struct {
	client      *Client
	mode        Mode
	maxAttempts int
}

// NewResolver constructs a Resolver.
func NewResolver(client *Client, mode Mode, maxAttempts int) *Resolver {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Resolver{client: client, mode: mode, maxAttempts: maxAttempts}
}

// Mode reports the configured mode.
func (r *Resolver) Mode() Mode { return r.mode }

// Resolve looks address up in the configured mode.
func (r *Resolver) Resolve(ctx context.Context, address string) (Resolution, bool) {
	if r.mode == ModeAddress {
		formatted, ok := r.client.ResolveFormattedAddress(ctx, address)
		if !ok {
			return Resolution{}, false
		}
		return Resolution{Address: formatted}, true
	}

	coords, ok := r.client.ResolveCoordinates(ctx, address, r.maxAttempts)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Address: address, Coordinates: &coords}, true
}
