// internal/events/publisher.go

// Package events publishes domain events about stored places.
package events

import (
	"context"
	"encoding/json"
	"strconv"

	"places-bot/internal/domain"
)

// Publisher emits place events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishPlaceSaved(ctx context.Context, event domain.PlaceSaved) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

// PublishPlaceSaved implements Publisher.
func (NopPublisher) PublishPlaceSaved(context.Context, domain.PlaceSaved) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }

// encodePlaceSaved returns the partition key and JSON body of an event.
func encodePlaceSaved(event domain.PlaceSaved) ([]byte, []byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, nil, err
	}
	return []byte(strconv.FormatInt(event.UserID, 10)), body, nil
}
