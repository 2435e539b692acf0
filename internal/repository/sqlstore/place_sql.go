// internal/repository/sqlstore/place_sql.go
package sqlstore

import (
	"context"
	"fmt"

	"places-bot/internal/domain"
	"places-bot/internal/repository"
	"places-bot/internal/util"
)

// PlaceRepository implements repository.PlaceRepository on top of sqlx.
type PlaceRepository struct{}

// NewPlaceRepository creates a new PlaceRepository.
func NewPlaceRepository() repository.PlaceRepository {
	return &PlaceRepository{}
}

// AddPlace inserts a new place row and stores the generated id on place.
func (r *PlaceRepository) AddPlace(ctx context.Context, q repository.DBExecutor, place *domain.Place) error {
	if (place.Latitude == nil) != (place.Longitude == nil) {
		return fmt.Errorf("add place: latitude and longitude must be set together: %w", util.ErrInvalidInput)
	}

	query := q.Rebind(`INSERT INTO places (user_id, place_name, address, latitude, longitude)
		VALUES (?, ?, ?, ?, ?) RETURNING id`)
	err := q.QueryRowContext(ctx, query,
		place.UserID,
		place.Name,
		place.Address,
		place.Latitude,
		place.Longitude,
	).Scan(&place.ID)
	if err != nil {
		return fmt.Errorf("failed to add place for user %d: %w", place.UserID, err)
	}
	return nil
}

// ListPlaces returns (name, address) rows for the user, newest first.
// id breaks ties between rows created within the same clock tick.
func (r *PlaceRepository) ListPlaces(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.PlaceSummary, error) {
	places := []domain.PlaceSummary{}
	query := q.Rebind(`
		SELECT place_name, address
		FROM places
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`)
	if err := q.SelectContext(ctx, &places, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list places for user %d: %w", userID, err)
	}
	return places, nil
}

// ListGeocodedPlaces returns rows that carry both coordinates, newest first.
func (r *PlaceRepository) ListGeocodedPlaces(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.GeocodedPlace, error) {
	places := []domain.GeocodedPlace{}
	query := q.Rebind(`
		SELECT place_name, address, latitude, longitude
		FROM places
		WHERE user_id = ? AND latitude IS NOT NULL AND longitude IS NOT NULL
		ORDER BY created_at DESC, id DESC`)
	if err := q.SelectContext(ctx, &places, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list geocoded places for user %d: %w", userID, err)
	}
	return places, nil
}
