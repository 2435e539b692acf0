// internal/service/user_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"places-bot/internal/util"
)

func TestUserService(t *testing.T) {
	t.Run("RegisterUser", func(t *testing.T) {
		ctx := context.Background()
		db := new(MockDBExecutor)
		users := new(MockUserRepository)
		svc := NewUserService(db, users)

		users.On("UpsertUser", ctx, db, int64(5)).Return(nil).Once()

		require.NoError(t, svc.RegisterUser(ctx, 5))
		users.AssertExpectations(t)
	})

	t.Run("RegisterUserStorageError", func(t *testing.T) {
		ctx := context.Background()
		db := new(MockDBExecutor)
		users := new(MockUserRepository)
		svc := NewUserService(db, users)

		users.On("UpsertUser", ctx, db, int64(5)).Return(errors.New("readonly database")).Once()

		assert.ErrorIs(t, svc.RegisterUser(ctx, 5), util.ErrStorage)
	})

	t.Run("SetCityTrims", func(t *testing.T) {
		ctx := context.Background()
		db := new(MockDBExecutor)
		users := new(MockUserRepository)
		svc := NewUserService(db, users)

		users.On("SetUserCity", ctx, db, int64(5), "Springfield").Return(nil).Once()

		city, err := svc.SetCity(ctx, 5, "  Springfield \n")
		require.NoError(t, err)
		assert.Equal(t, "Springfield", city)
		users.AssertExpectations(t)
	})

	t.Run("SetCityRejectsBlank", func(t *testing.T) {
		ctx := context.Background()
		db := new(MockDBExecutor)
		users := new(MockUserRepository)
		svc := NewUserService(db, users)

		_, err := svc.SetCity(ctx, 5, "   ")
		assert.ErrorIs(t, err, util.ErrInvalidInput)
		users.AssertNotCalled(t, "SetUserCity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
