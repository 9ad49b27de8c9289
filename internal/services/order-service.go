package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/entities"
	"parts-order-system/internal/repositories"
	"parts-order-system/internal/workflow"
	"parts-order-system/pkg/config"
	"parts-order-system/pkg/constants"
	apperrors "parts-order-system/pkg/errors"
	"parts-order-system/pkg/types"
	"parts-order-system/pkg/utils"
)

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error)
	FindOrderDetail(ctx context.Context, id uint64) (*dto.OrderDetailDTO, error)
	CreateOrder(ctx context.Context, userID uint64, payload dto.CreateOrderDTO) (*dto.OrderDTO, error)
	UpdateOrder(ctx context.Context, userID, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error)
	AddItem(ctx context.Context, userID, orderID uint64, payload dto.CreateOrderItemDTO) (*dto.OrderItemDTO, error)
	UpdateItem(ctx context.Context, userID, orderID, itemID uint64, payload dto.UpdateOrderItemDTO) (*dto.OrderItemDTO, error)
	DeleteItem(ctx context.Context, userID, orderID, itemID uint64) error
	SubmitForReview(ctx context.Context, userID, orderID uint64, payload dto.SubmitForReviewDTO) (*dto.OrderDTO, error)
	ForceTransition(ctx context.Context, userID, orderID uint64, payload dto.ForceTransitionDTO) (*dto.OrderDTO, error)
	CancelOrder(ctx context.Context, userID, orderID uint64, comments string) (*dto.OrderDTO, error)
	CreateNote(ctx context.Context, userID, orderID uint64, payload dto.CreateNoteDTO) error
}

type OrderService struct {
	orderRepo    repositories.OrderRepositoryInterface
	itemRepo     repositories.OrderItemRepositoryInterface
	reviewerRepo repositories.OrderReviewerRepositoryInterface
	workflowRepo repositories.WorkflowRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
	actors       ActorDirectoryInterface
	txManager    repositories.TxManagerInterface
	reviewCfg    config.ReviewConfig
	logger       *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	itemRepo repositories.OrderItemRepositoryInterface,
	reviewerRepo repositories.OrderReviewerRepositoryInterface,
	workflowRepo repositories.WorkflowRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	actors ActorDirectoryInterface,
	txManager repositories.TxManagerInterface,
	reviewCfg config.ReviewConfig,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		reviewerRepo: reviewerRepo,
		workflowRepo: workflowRepo,
		userRepo:     userRepo,
		actors:       actors,
		txManager:    txManager,
		reviewCfg:    reviewCfg,
		logger:       logger,
	}
}

// wrapWorkflowError переводит ошибки движка переходов в HTTP-ответы.
// Подсказка с легальными целями уходит клиенту в details.
func wrapWorkflowError(err error) error {
	var unknownState *workflow.UnknownStateError
	if errors.As(err, &unknownState) {
		return apperrors.NewHttpError(http.StatusBadRequest, unknownState.Error(), nil, nil)
	}

	var terminal *workflow.TerminalStateError
	if errors.As(err, &terminal) {
		return apperrors.NewHttpError(http.StatusConflict, terminal.Error(), nil, nil)
	}

	var illegal *workflow.IllegalTransitionError
	if errors.As(err, &illegal) {
		return apperrors.NewHttpError(http.StatusConflict, illegal.Error(), nil,
			map[string]interface{}{"legal_targets": illegal.Legal})
	}

	switch {
	case errors.Is(err, workflow.ErrConcurrentModification):
		return apperrors.NewHttpError(http.StatusConflict, workflow.ErrConcurrentModification.Error(), err, nil)
	case errors.Is(err, workflow.ErrReviewerNotAssigned):
		return apperrors.NewHttpError(http.StatusForbidden, workflow.ErrReviewerNotAssigned.Error(), nil, nil)
	case errors.Is(err, workflow.ErrVerdictAlreadyRecorded):
		return apperrors.NewHttpError(http.StatusConflict, workflow.ErrVerdictAlreadyRecorded.Error(), nil, nil)
	case errors.Is(err, workflow.ErrUnknownVerdict):
		return apperrors.NewHttpError(http.StatusBadRequest, workflow.ErrUnknownVerdict.Error(), nil, nil)
	}
	return err
}

func (s *OrderService) GetOrders(ctx context.Context, filter types.Filter) ([]dto.OrderDTO, uint64, error) {
	orders, total, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		creator, err := s.actors.Display(ctx, orders[i].CreatedBy)
		if err != nil {
			s.logger.Warn("Не удалось получить данные автора заявки",
				zap.Uint64("order_id", orders[i].ID), zap.Error(err))
			creator = dto.ShortUserDTO{ID: orders[i].CreatedBy}
		}
		result = append(result, toOrderDTO(&orders[i], creator))
	}
	return result, total, nil
}

func (s *OrderService) FindOrderDetail(ctx context.Context, id uint64) (*dto.OrderDetailDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	creator, err := s.actors.Display(ctx, order.CreatedBy)
	if err != nil {
		creator = dto.ShortUserDTO{ID: order.CreatedBy}
	}

	detail := &dto.OrderDetailDTO{OrderDTO: toOrderDTO(order, creator)}

	items, err := s.itemRepo.GetByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Items = make([]dto.OrderItemDTO, 0, len(items))
	for i := range items {
		detail.Items = append(detail.Items, toOrderItemDTO(&items[i]))
	}

	assignments, err := s.reviewerRepo.GetByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Reviewers = make([]dto.ReviewerAssignmentDTO, 0, len(assignments))
	for i := range assignments {
		reviewer, err := s.actors.Display(ctx, assignments[i].UserID)
		if err != nil {
			reviewer = dto.ShortUserDTO{ID: assignments[i].UserID}
		}
		detail.Reviewers = append(detail.Reviewers, toReviewerAssignmentDTO(&assignments[i], reviewer))
	}

	entries, err := s.workflowRepo.GetByOrderID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	detail.Workflow = make([]dto.WorkflowEntryDTO, 0, len(entries))
	for i := range entries {
		actor, err := s.actors.Display(ctx, entries[i].UserID)
		if err != nil {
			actor = dto.ShortUserDTO{ID: entries[i].UserID}
		}
		detail.Workflow = append(detail.Workflow, toWorkflowEntryDTO(&entries[i], actor))
	}

	return detail, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, userID uint64, payload dto.CreateOrderDTO) (*dto.OrderDTO, error) {
	order := &entities.Order{
		Title:        payload.Title,
		UrgencyLevel: constants.UrgencyMedium,
		Currency:     "MNT",
		Status:       string(workflow.StatusDraft),
		CreatedBy:    userID,
	}
	if payload.UrgencyLevel != "" {
		if !constants.IsValidUrgency(payload.UrgencyLevel) {
			return nil, apperrors.NewInvalidInputError("недопустимый уровень срочности: %s", payload.UrgencyLevel)
		}
		order.UrgencyLevel = payload.UrgencyLevel
	}
	if payload.Currency != "" {
		order.Currency = payload.Currency
	}
	applyNullString(&order.Description, payload.Description)
	applyNullString(&order.EquipmentName, payload.EquipmentName)
	applyNullString(&order.EquipmentModel, payload.EquipmentModel)
	applyNullString(&order.EquipmentSerial, payload.EquipmentSerial)
	applyNullString(&order.EquipmentLocation, payload.EquipmentLocation)
	applyNullString(&order.Notes, payload.Notes)
	if payload.RequestedDeliveryDate.Valid {
		date, err := time.Parse("2006-01-02", payload.RequestedDeliveryDate.String)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("недопустимая дата поставки: %s", payload.RequestedDeliveryDate.String)
		}
		order.RequestedDeliveryDate = &date
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		number, err := s.orderRepo.NextOrderNumber(ctx, tx)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		newID, err := s.orderRepo.CreateOrderInTx(ctx, tx, order)
		if err != nil {
			return err
		}
		order.ID = newID

		total := 0.0
		for i := range payload.Items {
			item := itemFromCreateDTO(newID, &payload.Items[i])
			if _, err := s.itemRepo.CreateInTx(ctx, tx, item); err != nil {
				return err
			}
			if item.UnitPrice != nil {
				total += *item.UnitPrice * float64(item.Quantity)
			}
		}
		if total > 0 {
			if err := s.orderRepo.UpdateTotalInTx(ctx, tx, newID, total); err != nil {
				return err
			}
			order.TotalEstimatedCost = total
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Создана заявка",
		zap.Uint64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Uint64("user_id", userID))

	creator, err := s.actors.Display(ctx, userID)
	if err != nil {
		creator = dto.ShortUserDTO{ID: userID}
	}
	created, err := s.orderRepo.FindOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	result := toOrderDTO(created, creator)
	return &result, nil
}

// editableOrder проверяет право редактирования: автор или администратор,
// и только пока заявка ещё не ушла на согласование.
func (s *OrderService) editableOrder(ctx context.Context, order *entities.Order, userID uint64) error {
	if order.CreatedBy != userID {
		role, err := utils.GetUserRoleFromCtx(ctx)
		if err != nil || role != constants.RoleAdmin {
			return apperrors.ErrForbidden
		}
	}

	status := workflow.Normalize(workflow.Status(order.Status))
	if status != workflow.StatusDraft && status != workflow.StatusChangesRequested {
		return apperrors.NewHttpError(http.StatusConflict,
			"заявка в статусе "+string(status)+" не подлежит редактированию", nil, nil)
	}
	return nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, userID, id uint64, payload dto.UpdateOrderDTO) (*dto.OrderDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.editableOrder(ctx, order, userID); err != nil {
			return err
		}

		if payload.Title.Valid {
			order.Title = payload.Title.String
		}
		if payload.UrgencyLevel.Valid {
			if !constants.IsValidUrgency(payload.UrgencyLevel.String) {
				return apperrors.NewInvalidInputError("недопустимый уровень срочности: %s", payload.UrgencyLevel.String)
			}
			order.UrgencyLevel = payload.UrgencyLevel.String
		}
		applyNullString(&order.Description, payload.Description)
		applyNullString(&order.EquipmentName, payload.EquipmentName)
		applyNullString(&order.EquipmentModel, payload.EquipmentModel)
		applyNullString(&order.EquipmentSerial, payload.EquipmentSerial)
		applyNullString(&order.EquipmentLocation, payload.EquipmentLocation)
		applyNullString(&order.Notes, payload.Notes)
		if payload.RequestedDeliveryDate.Valid {
			date, err := time.Parse("2006-01-02", payload.RequestedDeliveryDate.String)
			if err != nil {
				return apperrors.NewInvalidInputError("недопустимая дата поставки: %s", payload.RequestedDeliveryDate.String)
			}
			order.RequestedDeliveryDate = &date
		}

		return s.orderRepo.UpdateOrderInTx(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	creator, err := s.actors.Display(ctx, order.CreatedBy)
	if err != nil {
		creator = dto.ShortUserDTO{ID: order.CreatedBy}
	}
	result := toOrderDTO(order, creator)
	return &result, nil
}

func (s *OrderService) AddItem(ctx context.Context, userID, orderID uint64, payload dto.CreateOrderItemDTO) (*dto.OrderItemDTO, error) {
	var created *entities.OrderItem
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := s.editableOrder(ctx, order, userID); err != nil {
			return err
		}

		item := itemFromCreateDTO(orderID, &payload)
		newID, err := s.itemRepo.CreateInTx(ctx, tx, item)
		if err != nil {
			return err
		}
		item.ID = newID
		created = item

		return s.recalcTotalInTx(ctx, tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	result := toOrderItemDTO(created)
	return &result, nil
}

func (s *OrderService) UpdateItem(ctx context.Context, userID, orderID, itemID uint64, payload dto.UpdateOrderItemDTO) (*dto.OrderItemDTO, error) {
	var updated *entities.OrderItem
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := s.editableOrder(ctx, order, userID); err != nil {
			return err
		}

		item, err := s.itemRepo.FindItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item.OrderID != orderID {
			return apperrors.ErrNotFound
		}

		if payload.PartName.Valid {
			item.PartName = payload.PartName.String
		}
		if payload.Quantity.Valid {
			if payload.Quantity.Int < 1 {
				return apperrors.NewInvalidInputError("количество должно быть не меньше 1")
			}
			item.Quantity = payload.Quantity.Int
		}
		applyNullString(&item.PartNumber, payload.PartNumber)
		applyNullString(&item.Manufacturer, payload.Manufacturer)
		applyNullString(&item.Notes, payload.Notes)
		if payload.UnitPrice.Valid {
			price := payload.UnitPrice.Float64
			item.UnitPrice = &price
		}

		if err := s.itemRepo.UpdateInTx(ctx, tx, item); err != nil {
			return err
		}
		updated = item

		return s.recalcTotalInTx(ctx, tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	result := toOrderItemDTO(updated)
	return &result, nil
}

func (s *OrderService) DeleteItem(ctx context.Context, userID, orderID, itemID uint64) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := s.editableOrder(ctx, order, userID); err != nil {
			return err
		}

		item, err := s.itemRepo.FindItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item.OrderID != orderID {
			return apperrors.ErrNotFound
		}

		if err := s.itemRepo.DeleteInTx(ctx, tx, itemID); err != nil {
			return err
		}
		return s.recalcTotalInTx(ctx, tx, orderID)
	})
}

// SubmitForReview переводит заявку на техническую проверку и фиксирует
// набор проверяющих. При повторной отправке после changes_requested набор
// задаётся заново: старые вердикты не засчитываются.
func (s *OrderService) SubmitForReview(ctx context.Context, userID, orderID uint64, payload dto.SubmitForReviewDTO) (*dto.OrderDTO, error) {
	if len(payload.ReviewerIDs) < s.reviewCfg.MinReviewers {
		return nil, apperrors.NewInvalidInputError(
			"необходимо выбрать не менее %d проверяющих", s.reviewCfg.MinReviewers)
	}
	if s.reviewCfg.MaxReviewers > 0 && len(payload.ReviewerIDs) > s.reviewCfg.MaxReviewers {
		return nil, apperrors.NewInvalidInputError(
			"можно выбрать не более %d проверяющих", s.reviewCfg.MaxReviewers)
	}

	found, err := s.userRepo.ExistingReviewerIDs(ctx, payload.ReviewerIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(payload.ReviewerIDs) {
		return nil, apperrors.NewInvalidInputError("среди выбранных есть недействительные проверяющие")
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.CreatedBy != userID {
			return apperrors.ErrForbidden
		}

		reason := constants.ChangeReasonSubmission
		if workflow.Normalize(workflow.Status(order.Status)) == workflow.StatusChangesRequested {
			reason = constants.ChangeReasonResubmission
		}

		eff, err := workflow.ProposeTransition(order, workflow.StatusPendingTechnicalReview,
			userID, reason, payload.Comments, time.Now())
		if err != nil {
			return wrapWorkflowError(err)
		}

		return s.applyEffectInTx(ctx, tx, eff, func() error {
			if err := s.reviewerRepo.DeleteByOrderInTx(ctx, tx, orderID, constants.ReviewerTypeTechnical); err != nil {
				return err
			}
			return s.reviewerRepo.CreateBulkInTx(ctx, tx, orderID, constants.ReviewerTypeTechnical, payload.ReviewerIDs)
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Заявка отправлена на проверку",
		zap.Uint64("order_id", orderID),
		zap.Int("reviewers", len(payload.ReviewerIDs)),
		zap.Uint64("user_id", userID))

	return s.freshOrderDTO(ctx, orderID)
}

// ForceTransition — административная смена статуса в обход кворума.
// Статус меняется compare-and-swap'ом; при конкурентном изменении состояние
// перечитывается и переход валидируется заново, ограниченное число раз.
func (s *OrderService) ForceTransition(ctx context.Context, userID, orderID uint64, payload dto.ForceTransitionDTO) (*dto.OrderDTO, error) {
	attempts := s.reviewCfg.TransitionRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		order, err := s.orderRepo.FindOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}

		eff, err := workflow.ProposeTransition(order, workflow.Status(payload.Target),
			userID, constants.ChangeReasonAdminAction, payload.Comments, time.Now())
		if err != nil {
			return nil, wrapWorkflowError(err)
		}
		reason := payload.Reason
		eff.Entry.ChangeReason = &reason

		err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			if err := s.orderRepo.UpdateStatusCAS(ctx, tx, orderID,
				string(eff.FromStatus), string(eff.NewStatus), eff.UpdatedAt); err != nil {
				return err
			}
			txID := uuid.New()
			eff.Entry.TxID = &txID
			if err := s.workflowRepo.AppendInTx(ctx, tx, eff.Entry); err != nil {
				return err
			}
			if eff.ResetVerdicts {
				if err := s.reviewerRepo.ResetVerdictsInTx(ctx, tx, orderID, constants.ReviewerTypeTechnical); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
					return err
				}
			}
			return nil
		})
		if err == nil {
			s.logger.Info("Статус заявки изменён администратором",
				zap.Uint64("order_id", orderID),
				zap.String("from", string(eff.FromStatus)),
				zap.String("to", string(eff.NewStatus)),
				zap.Uint64("user_id", userID))
			return s.freshOrderDTO(ctx, orderID)
		}
		if !errors.Is(err, workflow.ErrConcurrentModification) {
			return nil, err
		}
		lastErr = err
		s.logger.Warn("Конкурентное изменение заявки, повтор",
			zap.Uint64("order_id", orderID), zap.Int("attempt", attempt+1))
	}

	return nil, wrapWorkflowError(lastErr)
}

func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uint64, comments string) (*dto.OrderDTO, error) {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.orderRepo.FindOrderForUpdateInTx(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.CreatedBy != userID {
			role, roleErr := utils.GetUserRoleFromCtx(ctx)
			if roleErr != nil || role != constants.RoleAdmin {
				return apperrors.ErrForbidden
			}
		}

		eff, err := workflow.ProposeTransition(order, workflow.StatusCancelled,
			userID, constants.ChangeReasonCancellation, comments, time.Now())
		if err != nil {
			return wrapWorkflowError(err)
		}
		return s.applyEffectInTx(ctx, tx, eff, nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Заявка отменена", zap.Uint64("order_id", orderID), zap.Uint64("user_id", userID))
	return s.freshOrderDTO(ctx, orderID)
}

func (s *OrderService) CreateNote(ctx context.Context, userID, orderID uint64, payload dto.CreateNoteDTO) error {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}

	// Заметки не меняют статус и разрешены в любом состоянии,
	// включая финальные.
	eff := workflow.NoteEffect(order, userID, payload.Comments, time.Now())
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.workflowRepo.AppendInTx(ctx, tx, eff.Entry)
	})
}

// applyEffectInTx применяет эффект перехода: статус, строка журнала,
// побочные мутации. Вызывается под блокировкой строки заявки.
func (s *OrderService) applyEffectInTx(ctx context.Context, tx pgx.Tx, eff *workflow.Effect, extra func() error) error {
	if eff.Entry != nil {
		// Сначала журнал: без строки журнала смена статуса не фиксируется.
		txID := uuid.New()
		eff.Entry.TxID = &txID
		if err := s.workflowRepo.AppendInTx(ctx, tx, eff.Entry); err != nil {
			return err
		}
	}
	if eff.StatusChanged {
		if err := s.orderRepo.UpdateStatusInTx(ctx, tx, eff.OrderID, string(eff.NewStatus), eff.UpdatedAt); err != nil {
			return err
		}
	}
	if extra != nil {
		return extra()
	}
	return nil
}

func (s *OrderService) freshOrderDTO(ctx context.Context, orderID uint64) (*dto.OrderDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	creator, err := s.actors.Display(ctx, order.CreatedBy)
	if err != nil {
		creator = dto.ShortUserDTO{ID: order.CreatedBy}
	}
	result := toOrderDTO(order, creator)
	return &result, nil
}

func (s *OrderService) recalcTotalInTx(ctx context.Context, tx pgx.Tx, orderID uint64) error {
	total, err := s.itemRepo.SumEstimatedCostInTx(ctx, tx, orderID)
	if err != nil {
		return err
	}
	return s.orderRepo.UpdateTotalInTx(ctx, tx, orderID, total)
}

func itemFromCreateDTO(orderID uint64, payload *dto.CreateOrderItemDTO) *entities.OrderItem {
	item := &entities.OrderItem{
		OrderID:  orderID,
		PartName: payload.PartName,
		Quantity: payload.Quantity,
		Status:   "requested",
	}
	applyNullString(&item.PartNumber, payload.PartNumber)
	applyNullString(&item.Manufacturer, payload.Manufacturer)
	applyNullString(&item.Notes, payload.Notes)
	if payload.UnitPrice.Valid {
		price := payload.UnitPrice.Float64
		item.UnitPrice = &price
	}
	return item
}

// applyNullString применяет частичное обновление: отсутствующее поле
// не трогает значение, явная пустая строка очищает его.
func applyNullString(dst **string, src null.String) {
	if !src.Valid {
		return
	}
	if src.String == "" {
		*dst = nil
		return
	}
	value := src.String
	*dst = &value
}
