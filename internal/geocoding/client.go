// internal/geocoding/client.go
package geocoding

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"places-bot/internal/domain"
)

// DefaultMaxAttempts bounds coordinate lookups when callers have no preference.
const DefaultMaxAttempts = 3

var errNoResult = errors.New("provider returned no location")

// Client wraps a Provider behind the two resolution operations.
type Client struct {
	provider   Provider
	logger     *slog.Logger
	newBackOff func() backoff.BackOff
}

// Option customises a Client.
type Option func(*Client)

// WithRetryDelay sets a fixed delay between timed-out attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.newBackOff = func() backoff.BackOff { return backoff.NewConstantBackOff(d) }
	}
}

// WithBackOff replaces the delay policy, e.g. with backoff.NewExponentialBackOff.
// The attempt bound is still applied on top.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = factory }
}

// NewClient constructs a Client with a one second fixed retry delay.
func NewClient(provider Provider, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		logger:   logger,
	}
	WithRetryDelay(time.Second)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveCoordinates looks address up, retrying only provider timeouts, for at
// most maxAttempts attempts. An empty provider answer is final. Any failure,
// exhausted retries included, reports ok=false.
func (c *Client) ResolveCoordinates(ctx context.Context, address string, maxAttempts int) (domain.Coordinates, bool) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var (
		attempt int
		found   *Location
	)
	operation := func() error {
		attempt++
		c.logger.Info("Geocoding address", "address", address, "attempt", attempt)
		lookupAttempts.WithLabelValues(string(ModeCoordinates)).Inc()

		loc, err := c.provider.Lookup(ctx, address)
		if err != nil {
			if errors.Is(err, ErrProviderTimeout) {
				c.logger.Warn("Geocoding attempt timed out", "address", address, "attempt", attempt, "max_attempts", maxAttempts)
				return err
			}
			return backoff.Permanent(err)
		}
		if loc == nil {
			return backoff.Permanent(errNoResult)
		}
		found = loc
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), uint64(maxAttempts-1)), ctx)
	err := backoff.Retry(operation, policy)

	switch {
	case err == nil:
		c.logger.Info("Geocoded address", "address", address, "lat", found.Lat, "lon", found.Lon)
		recordLookup(ModeCoordinates, outcomeFound)
		return domain.Coordinates{Lat: found.Lat, Lon: found.Lon}, true
	case errors.Is(err, errNoResult):
		c.logger.Warn("No results found for address", "address", address)
		recordLookup(ModeCoordinates, outcomeNotFound)
	case errors.Is(err, ErrProviderTimeout):
		c.logger.Error("Geocoding failed after retries", "address", address, "attempts", attempt)
		recordLookup(ModeCoordinates, outcomeTimeout)
	default:
		c.logger.Error("Geocoding error", "address", address, "error", err)
		recordLookup(ModeCoordinates, outcomeError)
	}
	return domain.Coordinates{}, false
}

// ResolveFormattedAddress performs one lookup and returns the provider's
// canonical address string. Any failure reports ok=false.
func (c *Client) ResolveFormattedAddress(ctx context.Context, address string) (string, bool) {
	lookupAttempts.WithLabelValues(string(ModeAddress)).Inc()

	loc, err := c.provider.Lookup(ctx, address)
	switch {
	case err != nil:
		c.logger.Error("Error getting formatted address", "address", address, "error", err)
		if errors.Is(err, ErrProviderTimeout) {
			recordLookup(ModeAddress, outcomeTimeout)
		} else {
			recordLookup(ModeAddress, outcomeError)
		}
		return "", false
	case loc == nil || loc.Address == "":
		c.logger.Warn("No results found for address", "address", address)
		recordLookup(ModeAddress, outcomeNotFound)
		return "", false
	}
	recordLookup(ModeAddress, outcomeFound)
	return loc.Address, true
}
