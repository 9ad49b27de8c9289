package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parts-order-system/internal/entities"
	"parts-order-system/internal/workflow"
)

const workflowColumns = `id, order_id, from_status, to_status, user_id, change_reason, comments, tx_id, created_at`

type WorkflowRepositoryInterface interface {
	// AppendInTx добавляет запись в журнал. Журнал только растёт:
	// UPDATE и DELETE по workflow_entries не существуют.
	AppendInTx(ctx context.Context, tx pgx.Tx, entry *entities.WorkflowEntry) error
	GetByOrderID(ctx context.Context, orderID uint64, ascending bool) ([]entities.WorkflowEntry, error)
}

type WorkflowRepository struct {
	storage *pgxpool.Pool
}

func NewWorkflowRepository(storage *pgxpool.Pool) WorkflowRepositoryInterface {
	return &WorkflowRepository{storage: storage}
}

func (r *WorkflowRepository) AppendInTx(ctx context.Context, tx pgx.Tx, entry *entities.WorkflowEntry) error {
	query := `
		INSERT INTO workflow_entries (order_id, from_status, to_status, user_id, change_reason, comments, tx_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := tx.QueryRow(ctx, query,
		entry.OrderID, entry.FromStatus, entry.ToStatus, entry.UserID,
		entry.ChangeReason, entry.Comments, entry.TxID, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		// Без записи в журнале переход не считается состоявшимся,
		// транзакция откатывается целиком.
		return fmt.Errorf("%w: %v", workflow.ErrAuditWriteFailure, err)
	}
	return nil
}

func (r *WorkflowRepository) GetByOrderID(ctx context.Context, orderID uint64, ascending bool) ([]entities.WorkflowEntry, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM workflow_entries WHERE order_id = $1 ORDER BY created_at %s, id %s`,
		workflowColumns, direction, direction)

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения журнала заказа: %w", err)
	}
	defer rows.Close()

	entries := make([]entities.WorkflowEntry, 0)
	for rows.Next() {
		var e entities.WorkflowEntry
		if err := rows.Scan(
			&e.ID, &e.OrderID, &e.FromStatus, &e.ToStatus,
			&e.UserID, &e.ChangeReason, &e.Comments, &e.TxID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи журнала: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
