// internal/service/user_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"places-bot/internal/repository"
	"places-bot/internal/util"
)

// UserService covers onboarding: registering users and their default city.
type UserService interface {
	RegisterUser(ctx context.Context, userID int64) error
	SetCity(ctx context.Context, userID int64, city string) (string, error)
}

type userService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(dbExecutor repository.DBExecutor, userRepo repository.UserRepository) UserService {
	return &userService{dbExecutor: dbExecutor, userRepo: userRepo}
}

// RegisterUser creates the user row on first contact.
func (s *userService) RegisterUser(ctx context.Context, userID int64) error {
	if err := s.userRepo.UpsertUser(ctx, s.dbExecutor, userID); err != nil {
		return fmt.Errorf("register user: %w: %w", util.ErrStorage, err)
	}
	return nil
}

// SetCity stores the trimmed city as the user's default and returns it.
// The city is free-form and not geocoded here.
func (s *userService) SetCity(ctx context.Context, userID int64, city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", util.ErrInvalidInput
	}
	if err := s.userRepo.SetUserCity(ctx, s.dbExecutor, userID, city); err != nil {
		return "", fmt.Errorf("set city: %w: %w", util.ErrStorage, err)
	}
	return city, nil
}
