// internal/geocoding/provider.go

// Package geocoding resolves free-text addresses through an external provider.
//
// The Client exposes two resolution modes: coordinate lookup with bounded
// retries on provider timeouts, and single-attempt formatted-address lookup.
// Every failure degrades to "not found"; nothing propagates to callers.
package geocoding

import (
	"context"
	"errors"
)

// ErrProviderTimeout marks transient provider failures. Only these are retried.
var ErrProviderTimeout = errors.New("geocoding provider timed out")

// Location is a provider hit.
type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"` // Canonical address as returned by the provider
}

// Provider performs a single blocking lookup. A nil Location with a nil error
// means the provider found nothing. Timeouts wrap ErrProviderTimeout.
type Provider interface {
	Lookup(ctx context.Context, address string) (*Location, error)
}

