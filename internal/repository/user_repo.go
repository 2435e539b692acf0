// internal/repository/user_repo.go
package repository

import "context"

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// UpsertUser inserts the user if absent. An existing row, city included, is left alone.
	UpsertUser(ctx context.Context, q DBExecutor, userID int64) error
	// SetUserCity updates the default city. A missing user is a no-op, not an error.
	SetUserCity(ctx context.Context, q DBExecutor, userID int64, city string) error
	// GetUserCity returns the default city or util.ErrCityNotSet when the user
	// has no row or a NULL city.
	GetUserCity(ctx context.Context, q DBExecutor, userID int64) (string, error)
}
