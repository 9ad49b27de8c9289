package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/entities"
	"parts-order-system/pkg/constants"
	apperrors "parts-order-system/pkg/errors"
	"parts-order-system/pkg/service"
	"parts-order-system/pkg/utils"
)

func newAuthFixture(t *testing.T) (AuthServiceInterface, service.JWTService) {
	t.Helper()

	users := newFakeUserRepo()
	hashed, err := utils.HashPassword("engineer123")
	require.NoError(t, err)
	users.users[10] = &entities.User{
		ID:           10,
		Login:        "engineer1",
		PasswordHash: hashed,
		Fio:          "Инженер",
		RoleCode:     constants.RoleEngineer,
	}

	jwtSvc := service.NewJWTService("test-secret", time.Hour, time.Hour*24)
	return NewAuthService(users, jwtSvc, zap.NewNop()), jwtSvc
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("корректные учётные данные дают пару токенов", func(t *testing.T) {
		authService, jwtSvc := newAuthFixture(t)

		tokens, err := authService.Login(ctx, dto.LoginDTO{Login: "engineer1", Password: "engineer123"})
		require.NoError(t, err)
		require.NotEmpty(t, tokens.AccessToken)
		require.NotEmpty(t, tokens.RefreshToken)

		claims, err := jwtSvc.ValidateToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), claims.UserID)
		assert.Equal(t, constants.RoleEngineer, claims.Role)
		assert.False(t, claims.IsRefreshToken)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		authService, _ := newAuthFixture(t)

		_, err := authService.Login(ctx, dto.LoginDTO{Login: "engineer1", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("неизвестный логин не отличим от неверного пароля", func(t *testing.T) {
		authService, _ := newAuthFixture(t)

		_, err := authService.Login(ctx, dto.LoginDTO{Login: "ghost", Password: "engineer123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("refresh-токен обменивается на новую пару", func(t *testing.T) {
		authService, _ := newAuthFixture(t)

		tokens, err := authService.Login(ctx, dto.LoginDTO{Login: "engineer1", Password: "engineer123"})
		require.NoError(t, err)

		refreshed, err := authService.Refresh(ctx, tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEmpty(t, refreshed.RefreshToken)
	})

	t.Run("access-токен в обмен не принимается", func(t *testing.T) {
		authService, _ := newAuthFixture(t)

		tokens, err := authService.Login(ctx, dto.LoginDTO{Login: "engineer1", Password: "engineer123"})
		require.NoError(t, err)

		_, err = authService.Refresh(ctx, tokens.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
	})
}
