package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parts-order-system/internal/entities"
	"parts-order-system/internal/workflow"
	apperrors "parts-order-system/pkg/errors"
)

const reviewerColumns = `id, order_id, user_id, reviewer_type, status, comments, assigned_at, completed_at`

type OrderReviewerRepositoryInterface interface {
	// GetByOrderIDInTx читает полный набор назначений гейта внутри транзакции.
	// Кворум пересчитывается по этому свежему набору, а не по снимку вызывающего.
	GetByOrderIDInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string) ([]entities.OrderReviewer, error)
	GetByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderReviewer, error)
	CreateBulkInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string, userIDs []uint64) error
	UpdateVerdictInTx(ctx context.Context, tx pgx.Tx, assignment *entities.OrderReviewer) error
	// ResetVerdictsInTx возвращает все назначения гейта в pending:
	// при повторной отправке старые вердикты не засчитываются.
	ResetVerdictsInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string) error
	// DeleteByOrderInTx удаляет назначения гейта целиком.
	// Повторная отправка задаёт набор проверяющих заново.
	DeleteByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string) error
}

type OrderReviewerRepository struct {
	storage *pgxpool.Pool
}

func NewOrderReviewerRepository(storage *pgxpool.Pool) OrderReviewerRepositoryInterface {
	return &OrderReviewerRepository{storage: storage}
}

func scanReviewers(rows pgx.Rows) ([]entities.OrderReviewer, error) {
	defer rows.Close()
	assignments := make([]entities.OrderReviewer, 0)
	for rows.Next() {
		var a entities.OrderReviewer
		if err := rows.Scan(
			&a.ID, &a.OrderID, &a.UserID, &a.ReviewerType,
			&a.Status, &a.Comments, &a.AssignedAt, &a.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования назначения проверяющего: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// getByOrder выполняет выборку назначений через пул или транзакцию.
// Пустой reviewerType означает все гейты заявки.
func (r *OrderReviewerRepository) getByOrder(ctx context.Context, q querier, orderID uint64, reviewerType string) ([]entities.OrderReviewer, error) {
	query := fmt.Sprintf(`SELECT %s FROM order_reviewers WHERE order_id = $1`, reviewerColumns)
	args := []interface{}{orderID}
	if reviewerType != "" {
		query += ` AND reviewer_type = $2`
		args = append(args, reviewerType)
	}
	rows, err := q.Query(ctx, query+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения назначений проверяющих: %w", err)
	}
	return scanReviewers(rows)
}

func (r *OrderReviewerRepository) GetByOrderIDInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string) ([]entities.OrderReviewer, error) {
	return r.getByOrder(ctx, tx, orderID, reviewerType)
}

func (r *OrderReviewerRepository) GetByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderReviewer, error) {
	return r.getByOrder(ctx, r.storage, orderID, "")
}

func (r *OrderReviewerRepository) CreateBulkInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string, userIDs []uint64) error {
	query := `
		INSERT INTO order_reviewers (order_id, user_id, reviewer_type, status, assigned_at)
		VALUES ($1, $2, $3, $4, NOW())`

	for _, userID := range userIDs {
		if _, err := tx.Exec(ctx, query, orderID, userID, reviewerType, string(workflow.VerdictPending)); err != nil {
			return fmt.Errorf("ошибка назначения проверяющего %d: %w", userID, err)
		}
	}
	return nil
}

func (r *OrderReviewerRepository) UpdateVerdictInTx(ctx context.Context, tx pgx.Tx, assignment *entities.OrderReviewer) error {
	query := `
		UPDATE order_reviewers SET status = $1, comments = $2, completed_at = $3
		WHERE id = $4 AND status = $5`

	tag, err := tx.Exec(ctx, query,
		assignment.Status, assignment.Comments, assignment.CompletedAt,
		assignment.ID, string(workflow.VerdictPending),
	)
	if err != nil {
		return fmt.Errorf("ошибка записи вердикта проверяющего: %w", err)
	}
	// Строка уже не pending — вердикт записан параллельным запросом.
	if tag.RowsAffected() == 0 {
		return workflow.ErrConcurrentModification
	}
	return nil
}

func (r *OrderReviewerRepository) ResetVerdictsInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string) error {
	query := `
		UPDATE order_reviewers
		SET status = $1, comments = NULL, completed_at = NULL
		WHERE order_id = $2 AND reviewer_type = $3`

	tag, err := tx.Exec(ctx, query, string(workflow.VerdictPending), orderID, reviewerType)
	if err != nil {
		return fmt.Errorf("ошибка сброса вердиктов: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderReviewerRepository) DeleteByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uint64, reviewerType string) error {
	_, err := tx.Exec(ctx, `DELETE FROM order_reviewers WHERE order_id = $1 AND reviewer_type = $2`, orderID, reviewerType)
	if err != nil {
		return fmt.Errorf("ошибка удаления назначений проверяющих: %w", err)
	}
	return nil
}
