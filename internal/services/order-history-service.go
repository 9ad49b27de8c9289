package services

import (
	"context"

	"go.uber.org/zap"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/repositories"
)

type OrderHistoryServiceInterface interface {
	GetHistory(ctx context.Context, orderID uint64, ascending bool) ([]dto.WorkflowEntryDTO, error)
}

// OrderHistoryService отдаёт журнал заявки как хронику:
// переходы статусов и заметки вперемешку, в порядке записи.
type OrderHistoryService struct {
	orderRepo    repositories.OrderRepositoryInterface
	workflowRepo repositories.WorkflowRepositoryInterface
	actors       ActorDirectoryInterface
	logger       *zap.Logger
}

func NewOrderHistoryService(
	orderRepo repositories.OrderRepositoryInterface,
	workflowRepo repositories.WorkflowRepositoryInterface,
	actors ActorDirectoryInterface,
	logger *zap.Logger,
) OrderHistoryServiceInterface {
	return &OrderHistoryService{
		orderRepo:    orderRepo,
		workflowRepo: workflowRepo,
		actors:       actors,
		logger:       logger,
	}
}

func (s *OrderHistoryService) GetHistory(ctx context.Context, orderID uint64, ascending bool) ([]dto.WorkflowEntryDTO, error) {
	// Сначала убеждаемся, что заявка существует: пустой журнал
	// несуществующей заявки — это 404, а не пустой список.
	if _, err := s.orderRepo.FindOrder(ctx, orderID); err != nil {
		return nil, err
	}

	entries, err := s.workflowRepo.GetByOrderID(ctx, orderID, ascending)
	if err != nil {
		return nil, err
	}

	history := make([]dto.WorkflowEntryDTO, 0, len(entries))
	for i := range entries {
		actor, err := s.actors.Display(ctx, entries[i].UserID)
		if err != nil {
			s.logger.Warn("Не удалось получить данные актора журнала",
				zap.Uint64("entry_id", entries[i].ID), zap.Error(err))
			actor = dto.ShortUserDTO{ID: entries[i].UserID}
		}
		history = append(history, toWorkflowEntryDTO(&entries[i], actor))
	}
	return history, nil
}
