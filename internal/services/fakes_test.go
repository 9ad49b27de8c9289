package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/entities"
	"parts-order-system/internal/workflow"
	apperrors "parts-order-system/pkg/errors"
	"parts-order-system/pkg/types"
)

// Фейки репозиториев держат состояние в памяти. Транзакционность здесь
// не моделируется: fn получает nil вместо pgx.Tx, фейки его игнорируют.

type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeOrderRepo struct {
	orders  map[uint64]*entities.Order
	nextID  uint64
	nextSeq int
	// casConflicts — сколько раз подряд CAS должен «проигрывать гонку».
	casConflicts int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint64]*entities.Order), nextID: 1, nextSeq: 1}
}

func (r *fakeOrderRepo) add(order *entities.Order) *entities.Order {
	if order.ID == 0 {
		order.ID = r.nextID
		r.nextID++
	}
	r.orders[order.ID] = order
	return order
}

func (r *fakeOrderRepo) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	result := make([]entities.Order, 0, len(r.orders))
	for _, o := range r.orders {
		result = append(result, *o)
	}
	return result, uint64(len(result)), nil
}

func (r *fakeOrderRepo) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) FindOrderForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error) {
	return r.FindOrder(ctx, id)
}

func (r *fakeOrderRepo) CreateOrderInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) (uint64, error) {
	copied := *order
	return r.add(&copied).ID, nil
}

func (r *fakeOrderRepo) UpdateOrderInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, updatedAt time.Time) error {
	order, ok := r.orders[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	order.Status = newStatus
	order.UpdatedAt = updatedAt
	return nil
}

func (r *fakeOrderRepo) UpdateStatusCAS(ctx context.Context, tx pgx.Tx, id uint64, expectedStatus, newStatus string, updatedAt time.Time) error {
	if r.casConflicts > 0 {
		r.casConflicts--
		return workflow.ErrConcurrentModification
	}
	order, ok := r.orders[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if order.Status != expectedStatus {
		return workflow.ErrConcurrentModification
	}
	order.Status = newStatus
	order.UpdatedAt = updatedAt
	return nil
}

func (r *fakeOrderRepo) UpdateTotalInTx(ctx context.Context, tx pgx.Tx, id uint64, total float64) error {
	order, ok := r.orders[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	order.TotalEstimatedCost = total
	return nil
}

func (r *fakeOrderRepo) NextOrderNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	number := r.nextSeq
	r.nextSeq++
	return fmt.Sprintf("ORD-%d-%05d", time.Now().Year(), number), nil
}

type fakeItemRepo struct {
	items  map[uint64]*entities.OrderItem
	nextID uint64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uint64]*entities.OrderItem), nextID: 1}
}

func (r *fakeItemRepo) GetByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderItem, error) {
	result := make([]entities.OrderItem, 0)
	for _, item := range r.items {
		if item.OrderID == orderID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeItemRepo) FindItem(ctx context.Context, id uint64) (*entities.OrderItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) CreateInTx(ctx context.Context, tx pgx.Tx, item *entities.OrderItem) (uint64, error) {
	copied := *item
	copied.ID = r.nextID
	r.nextID++
	r.items[copied.ID] = &copied
	return copied.ID, nil
}

func (r *fakeItemRepo) UpdateInTx(ctx context.Context, tx pgx.Tx, item *entities.OrderItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) SumEstimatedCostInTx(ctx context.Context, tx pgx.Tx, orderID uint64) (float64, error) {
	total := 0.0
	for _, item := range r.items {
		if item.OrderID == orderID && item.UnitPrice != nil {
			total += *item.UnitPrice * float64(item.Quantity)
		}
	}
	return total, nil
}

type fakeReviewerRepo struct {
	assignments map[uint64]*entities.OrderReviewer
	nextID      uint64
}

func newFakeReviewerRepo() *fakeReviewerRepo {
	return &fakeReviewerRepo{assignments: make(map[uint64]*entities.OrderReviewer), nextID: 1}
}

func (r *fakeReviewerRepo) byOrder(orderID uint64, reviewerType string) []entities.OrderReviewer {
	result := make([]entities.OrderReviewer, 0)
	for id := uint64(1); id < r.nextID; id++ {
		a, ok := r.assignments[id]
		if !ok {
			continue
		}
		if a.OrderID == orderID && (reviewerType == "" || a.ReviewerType == reviewerType) {
			result = append(result, *a)
		}
	}
	return result
}

func (r *fakeReviewerRepo) GetByOrderIDInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string) ([]entities.OrderReviewer, error) {
	return r.byOrder(orderID, reviewerType), nil
}

func (r *fakeReviewerRepo) GetByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderReviewer, error) {
	return r.byOrder(orderID, ""), nil
}

func (r *fakeReviewerRepo) CreateBulkInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string, userIDs []uint64) error {
	for _, userID := range userIDs {
		a := &entities.OrderReviewer{
			ID:           r.nextID,
			OrderID:      orderID,
			UserID:       userID,
			ReviewerType: reviewerType,
			Status:       string(workflow.VerdictPending),
			AssignedAt:   time.Now(),
		}
		r.assignments[r.nextID] = a
		r.nextID++
	}
	return nil
}

func (r *fakeReviewerRepo) UpdateVerdictInTx(ctx context.Context, tx pgx.Tx, assignment *entities.OrderReviewer) error {
	existing, ok := r.assignments[assignment.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if existing.Status != string(workflow.VerdictPending) {
		return workflow.ErrConcurrentModification
	}
	copied := *assignment
	r.assignments[assignment.ID] = &copied
	return nil
}

func (r *fakeReviewerRepo) ResetVerdictsInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string) error {
	touched := false
	for _, a := range r.assignments {
		if a.OrderID == orderID && a.ReviewerType == reviewerType {
			a.Status = string(workflow.VerdictPending)
			a.Comments = nil
			a.CompletedAt = nil
			touched = true
		}
	}
	if !touched {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *fakeReviewerRepo) DeleteByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string) error {
	for id, a := range r.assignments {
		if a.OrderID == orderID && a.ReviewerType == reviewerType {
			delete(r.assignments, id)
		}
	}
	return nil
}

type fakeWorkflowRepo struct {
	entries []entities.WorkflowEntry
	nextID  uint64
	failing bool
}

func newFakeWorkflowRepo() *fakeWorkflowRepo {
	return &fakeWorkflowRepo{nextID: 1}
}

func (r *fakeWorkflowRepo) AppendInTx(ctx context.Context, tx pgx.Tx, entry *entities.WorkflowEntry) error {
	if r.failing {
		return workflow.ErrAuditWriteFailure
	}
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeWorkflowRepo) GetByOrderID(ctx context.Context, orderID uint64, ascending bool) ([]entities.WorkflowEntry, error) {
	result := make([]entities.WorkflowEntry, 0)
	for _, e := range r.entries {
		if e.OrderID == orderID {
			result = append(result, e)
		}
	}
	if !ascending {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[uint64]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*entities.User)}
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Login == login {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) GetReviewers(ctx context.Context) ([]entities.User, error) {
	result := make([]entities.User, 0)
	for _, user := range r.users {
		if user.IsReviewer {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) ExistingReviewerIDs(ctx context.Context, ids []uint64) ([]uint64, error) {
	found := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok && user.IsReviewer {
			found = append(found, id)
		}
	}
	return found, nil
}

type fakeActors struct{}

func (a *fakeActors) Display(ctx context.Context, userID uint64) (dto.ShortUserDTO, error) {
	return dto.ShortUserDTO{ID: userID, Fio: "Пользователь"}, nil
}

func (a *fakeActors) GetReviewers(ctx context.Context) ([]dto.ReviewerDTO, error) {
	return nil, nil
}
