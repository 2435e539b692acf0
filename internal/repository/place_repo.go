// internal/repository/place_repo.go
package repository

import (
	"context"

	"places-bot/internal/domain"
)

// PlaceRepository defines the interface for place data operations.
type PlaceRepository interface {
	// AddPlace appends a place row and sets place.ID. created_at is assigned by the store.
	AddPlace(ctx context.Context, q DBExecutor, place *domain.Place) error
	// ListPlaces returns the user's places, newest first.
	ListPlaces(ctx context.Context, q DBExecutor, userID int64) ([]domain.PlaceSummary, error)
	// ListGeocodedPlaces returns only places with both coordinates, newest first.
	ListGeocodedPlaces(ctx context.Context, q DBExecutor, userID int64) ([]domain.GeocodedPlace, error)
}
