package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/repositories"
	apperrors "parts-order-system/pkg/errors"
	"parts-order-system/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, jwtService service.JWTService, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByLogin(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, что именно не так: логин или пароль.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.logger.Warn("Неудачная попытка входа", zap.String("login", payload.Login))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.RoleCode)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Пользователь вошёл в систему",
		zap.Uint64("user_id", user.ID), zap.String("role", user.RoleCode))

	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Роль перечитывается из БД: смена роли вступает в силу при следующем
	// обновлении токенов, а удалённый пользователь теряет доступ.
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(user.ID, user.RoleCode)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}
