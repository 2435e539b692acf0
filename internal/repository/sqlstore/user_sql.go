// internal/repository/sqlstore/user_sql.go
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"places-bot/internal/domain"
	"places-bot/internal/repository"
	"places-bot/internal/util"
)

// UserRepository implements repository.UserRepository on top of sqlx.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
// Methods receive their DBExecutor per call, so the repository holds no connection.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{}
}

// UpsertUser inserts the user row unless it already exists.
func (r *UserRepository) UpsertUser(ctx context.Context, q repository.DBExecutor, userID int64) error {
	query := q.Rebind(`INSERT INTO users (user_id) VALUES (?) ON CONFLICT (user_id) DO NOTHING`)
	if _, err := q.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", userID, err)
	}
	return nil
}

// SetUserCity updates the default city of an existing user.
func (r *UserRepository) SetUserCity(ctx context.Context, q repository.DBExecutor, userID int64, city string) error {
	query := q.Rebind(`UPDATE users SET city = ? WHERE user_id = ?`)
	if _, err := q.ExecContext(ctx, query, city, userID); err != nil {
		return fmt.Errorf("failed to set city for user %d: %w", userID, err)
	}
	return nil
}

// GetUserCity returns the user's default city.
func (r *UserRepository) GetUserCity(ctx context.Context, q repository.DBExecutor, userID int64) (string, error) {
	var user domain.User
	query := q.Rebind(`SELECT user_id, city FROM users WHERE user_id = ?`)
	err := q.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", util.ErrCityNotSet
		}
		return "", fmt.Errorf("failed to get city for user %d: %w", userID, err)
	}
	if !user.HasCity() {
		return "", util.ErrCityNotSet
	}
	return *user.City, nil
}
