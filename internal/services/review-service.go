package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/repositories"
	"parts-order-system/internal/workflow"
	"parts-order-system/pkg/constants"
)

type ReviewServiceInterface interface {
	RecordVerdict(ctx context.Context, reviewerID, orderID uint64, payload dto.RecordVerdictDTO) (*dto.VerdictResultDTO, error)
}

// ReviewService обрабатывает вердикты проверяющих. Весь путь вердикта
// выполняется под блокировкой строки заявки: конкурентные вердикты по
// одной заявке сериализуются, кворум всегда считается по полному набору.
type ReviewService struct {
	orderRepo    repositories.OrderRepositoryInterface
	reviewerRepo repositories.OrderReviewerRepositoryInterface
	workflowRepo repositories.WorkflowRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
}

func NewReviewService(
	orderRepo repositories.OrderRepositoryInterface,
	reviewerRepo repositories.OrderReviewerRepositoryInterface,
	workflowRepo repositories.WorkflowRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) ReviewServiceInterface {
	return &ReviewService{
		orderRepo:    orderRepo,
		reviewerRepo: reviewerRepo,
		workflowRepo: workflowRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (s *ReviewService) RecordVerdict(ctx context.Context, reviewerID, orderID uint64, payload dto.RecordVerdictDTO) (*dto.VerdictResultDTO, error) {
	var eff *workflow.Effect

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}

		assignments, err := s.reviewerRepo.GetByOrderIDInTx(ctx, tx, orderID, constants.ReviewerTypeTechnical)
		if err != nil {
			return err
		}

		eff, err = workflow.ApplyVerdict(order, assignments, reviewerID,
			workflow.Verdict(payload.Verdict), payload.Comments, time.Now())
		if err != nil {
			return wrapWorkflowError(err)
		}

		if err := s.reviewerRepo.UpdateVerdictInTx(ctx, tx, eff.Assignment); err != nil {
			return wrapWorkflowError(err)
		}
		return s.applyEffectInTx(ctx, tx, eff)
	})
	if err != nil {
		return nil, err
	}

	logFields := []zap.Field{
		zap.Uint64("order_id", orderID),
		zap.Uint64("reviewer_id", reviewerID),
		zap.String("verdict", payload.Verdict),
		zap.Bool("status_changed", eff.StatusChanged),
	}
	if !eff.StatusChanged {
		// Для проверяющего это не отказ: вердикт записан, заявка ждёт остальных.
		logFields = append(logFields, zap.Error(workflow.ErrQuorumNotMet))
	}
	s.logger.Info("Записан вердикт проверяющего", logFields...)

	return &dto.VerdictResultDTO{
		OrderID:       orderID,
		OrderStatus:   string(eff.NewStatus),
		StatusChanged: eff.StatusChanged,
		QuorumResult:  string(quorumFromEffect(eff)),
	}, nil
}

func (s *ReviewService) applyEffectInTx(ctx context.Context, tx pgx.Tx, eff *workflow.Effect) error {
	if !eff.StatusChanged {
		return nil
	}
	// Сначала журнал: без строки журнала смена статуса не фиксируется.
	txID := uuid.New()
	eff.Entry.TxID = &txID
	if err := s.workflowRepo.AppendInTx(ctx, tx, eff.Entry); err != nil {
		return err
	}
	return s.orderRepo.UpdateStatusInTx(ctx, tx, eff.OrderID, string(eff.NewStatus), eff.UpdatedAt)
}

// quorumFromEffect восстанавливает итог кворума из применённого эффекта.
func quorumFromEffect(eff *workflow.Effect) workflow.QuorumResult {
	if !eff.StatusChanged {
		return workflow.QuorumPending
	}
	switch eff.NewStatus {
	case workflow.StatusRejected:
		return workflow.QuorumRejected
	case workflow.StatusChangesRequested:
		return workflow.QuorumChangesRequested
	case workflow.StatusPendingDepartmentApproval:
		return workflow.QuorumApproved
	}
	return workflow.QuorumPending
}
