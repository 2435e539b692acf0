// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"places-bot/internal/domain"
	"places-bot/internal/geocoding"
	"places-bot/internal/repository"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

func (m *MockDBExecutor) Rebind(query string) string {
	return query
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UpsertUser(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetUserCity(ctx context.Context, q repository.DBExecutor, userID int64, city string) error {
	args := m.Called(ctx, q, userID, city)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserCity(ctx context.Context, q repository.DBExecutor, userID int64) (string, error) {
	args := m.Called(ctx, q, userID)
	return args.String(0), args.Error(1)
}

// MockPlaceRepository is a mock implementation of repository.PlaceRepository.
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) AddPlace(ctx context.Context, q repository.DBExecutor, place *domain.Place) error {
	args := m.Called(ctx, q, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) ListPlaces(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.PlaceSummary, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlaceSummary), args.Error(1)
}

func (m *MockPlaceRepository) ListGeocodedPlaces(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.GeocodedPlace, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeocodedPlace), args.Error(1)
}

// MockResolver is a mock implementation of AddressResolver.
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, address string) (geocoding.Resolution, bool) {
	args := m.Called(ctx, address)
	return args.Get(0).(geocoding.Resolution), args.Bool(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPlaceSaved(ctx context.Context, event domain.PlaceSaved) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}
