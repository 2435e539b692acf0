// internal/service/place_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"places-bot/internal/domain"
	"places-bot/internal/events"
	"places-bot/internal/geocoding"
	"places-bot/internal/repository"
	"places-bot/internal/util"
)

// PlaceSeparator splits "name - address" submissions. Only the first
// occurrence counts; later ones stay in the address.
const PlaceSeparator = "-"

// DefaultPublishTimeout bounds the place.saved publish that runs before the
// user's confirmation.
const DefaultPublishTimeout = 2 * time.Second

// PlaceService defines the place intake pipeline and the listing queries.
type PlaceService interface {
	AddPlace(ctx context.Context, userID int64, text string) (*domain.Place, error)
	ListPlaces(ctx context.Context, userID int64) ([]domain.PlaceSummary, error)
	ListGeocodedPlaces(ctx context.Context, userID int64) ([]domain.GeocodedPlace, error)
}

// AddressResolver turns a composed address into what gets stored.
// *geocoding.Resolver implements it.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (geocoding.Resolution, bool)
}

// placeService implements the PlaceService interface.
type placeService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	placeRepo  repository.PlaceRepository
	resolver   AddressResolver
	publisher  events.Publisher
	publishTTL time.Duration
	logger     *slog.Logger
}

// NewPlaceService creates a new instance of PlaceService.
func NewPlaceService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	placeRepo repository.PlaceRepository,
	resolver AddressResolver,
	publisher events.Publisher,
	publishTimeout time.Duration,
	logger *slog.Logger,
) PlaceService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return &placeService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		placeRepo:  placeRepo,
		resolver:   resolver,
		publisher:  publisher,
		publishTTL: publishTimeout,
		logger:     logger,
	}
}

// ParsePlaceText splits "name - address" on the first separator and trims both parts.
func ParsePlaceText(text string) (name, address string, err error) {
	name, address, found := strings.Cut(text, PlaceSeparator)
	if !found {
		return "", "", util.ErrMissingSeparator
	}
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" || address == "" {
		return "", "", util.ErrEmptyPlaceName
	}
	return name, address, nil
}

// ComposeAddress appends the user's default city to a street address.
func ComposeAddress(address, city string) string {
	return address + ", " + city
}

// AddPlace parses text, geocodes it against the user's default city and stores
// the result. Nothing is written unless the address resolves.
func (s *placeService) AddPlace(ctx context.Context, userID int64, text string) (*domain.Place, error) {
	name, address, err := ParsePlaceText(text)
	if err != nil {
		recordIntake(intakeRejected)
		return nil, err
	}

	city, err := s.userRepo.GetUserCity(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrCityNotSet) {
			recordIntake(intakeNoCity)
			return nil, err
		}
		recordIntake(intakeStorageError)
		return nil, fmt.Errorf("add place: failed to get city for user %d: %w: %w", userID, util.ErrStorage, err)
	}

	fullAddress := ComposeAddress(address, city)
	resolution, ok := s.resolver.Resolve(ctx, fullAddress)
	if !ok {
		recordIntake(intakeUnresolved)
		return nil, fmt.Errorf("add place: %q: %w", fullAddress, util.ErrAddressNotResolved)
	}

	place := domain.NewPlace(userID, name, resolution.Address, resolution.Coordinates)
	if err := s.placeRepo.AddPlace(ctx, s.dbExecutor, place); err != nil {
		recordIntake(intakeStorageError)
		return nil, fmt.Errorf("add place: %w: %w", util.ErrStorage, err)
	}
	recordIntake(intakeSaved)

	s.publishSaved(ctx, place)
	return place, nil
}

// publishSaved emits place.saved best-effort. The place is already stored, so
// a slow or unreachable broker only costs publishTTL and a warning.
func (s *placeService) publishSaved(ctx context.Context, place *domain.Place) {
	ctx, cancel := context.WithTimeout(ctx, s.publishTTL)
	defer cancel()
	if err := s.publisher.PublishPlaceSaved(ctx, domain.NewPlaceSaved(place)); err != nil {
		s.logger.Warn("Failed to publish place event", "user_id", place.UserID, "place_id", place.ID, "error", err)
	}
}

// ListPlaces returns the user's places, newest first.
func (s *placeService) ListPlaces(ctx context.Context, userID int64) ([]domain.PlaceSummary, error) {
	places, err := s.placeRepo.ListPlaces(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list places: %w: %w", util.ErrStorage, err)
	}
	return places, nil
}

// ListGeocodedPlaces returns the user's places that have coordinates, newest first.
func (s *placeService) ListGeocodedPlaces(ctx context.Context, userID int64) ([]domain.GeocodedPlace, error) {
	places, err := s.placeRepo.ListGeocodedPlaces(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list geocoded places: %w: %w", util.ErrStorage, err)
	}
	return places, nil
}
