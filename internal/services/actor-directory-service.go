package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/repositories"
	"parts-order-system/pkg/constants"
	"parts-order-system/pkg/utils"
)

type ActorDirectoryInterface interface {
	Display(ctx context.Context, userID uint64) (dto.ShortUserDTO, error)
	GetReviewers(ctx context.Context) ([]dto.ReviewerDTO, error)
}

// ActorDirectoryService отдаёт отображаемые данные пользователей.
// Журнал и назначения хранят только user_id; ФИО и телефон подтягиваются
// отсюда через Redis-кеш, чтобы не ходить в users на каждую строку журнала.
type ActorDirectoryService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewActorDirectoryService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	cacheTTL time.Duration,
	logger *zap.Logger,
) ActorDirectoryInterface {
	return &ActorDirectoryService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (s *ActorDirectoryService) Display(ctx context.Context, userID uint64) (dto.ShortUserDTO, error) {
	key := fmt.Sprintf(constants.CacheKeyActorDisplay, userID)

	if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
		var display dto.ShortUserDTO
		if err := json.Unmarshal([]byte(cached), &display); err == nil {
			return display, nil
		}
		s.logger.Warn("Повреждённая запись в кеше, перечитываем из БД", zap.String("key", key))
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return dto.ShortUserDTO{}, err
	}
	display := toShortUserDTO(user)

	if raw, err := json.Marshal(display); err == nil {
		// Кеш вспомогательный: ошибка записи не должна ломать чтение.
		if err := s.cacheRepo.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
			s.logger.Warn("Не удалось записать в кеш", zap.String("key", key), zap.Error(err))
		}
	}

	return display, nil
}

func (s *ActorDirectoryService) GetReviewers(ctx context.Context) ([]dto.ReviewerDTO, error) {
	users, err := s.userRepo.GetReviewers(ctx)
	if err != nil {
		return nil, err
	}

	reviewers := make([]dto.ReviewerDTO, 0, len(users))
	for i := range users {
		u := &users[i]
		reviewers = append(reviewers, dto.ReviewerDTO{
			ID:             u.ID,
			Fio:            u.Fio,
			Phone:          utils.SafeDeref(u.Phone),
			DepartmentName: utils.SafeDeref(u.DepartmentName),
			Position:       utils.SafeDeref(u.Position),
		})
	}
	return reviewers, nil
}
