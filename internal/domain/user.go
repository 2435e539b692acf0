// internal/domain/user.go
package domain

import "time"

// User is a bot user keyed by the messaging gateway's numeric identifier.
type User struct {
	ID        int64     `db:"user_id" json:"user_id"`       // Externally supplied, unique
	City      *string   `db:"city" json:"city"`             // Default city, nil until onboarding completes
	CreatedAt time.Time `db:"created_at" json:"created_at"` // Assigned by the store
}

// HasCity reports whether the user finished onboarding.
func (u *User) HasCity() bool {
	return u.City != nil && *u.City != ""
}
