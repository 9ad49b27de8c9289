package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parts-order-system/internal/entities"
	apperrors "parts-order-system/pkg/errors"
)

const itemColumns = `id, order_id, part_number, part_name, manufacturer, quantity, unit_price, status, notes`

type OrderItemRepositoryInterface interface {
	GetByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderItem, error)
	FindItem(ctx context.Context, id uint64) (*entities.OrderItem, error)
	CreateInTx(ctx context.Context, tx pgx.Tx, item *entities.OrderItem) (uint64, error)
	UpdateInTx(ctx context.Context, tx pgx.Tx, item *entities.OrderItem) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error
	// SumEstimatedCostInTx считает сумму по позициям внутри транзакции:
	// видит ещё не закоммиченные изменения позиций.
	SumEstimatedCostInTx(ctx context.Context, tx pgx.Tx, orderID uint64) (float64, error)
}

type OrderItemRepository struct {
	storage *pgxpool.Pool
}

func NewOrderItemRepository(storage *pgxpool.Pool) OrderItemRepositoryInterface {
	return &OrderItemRepository{storage: storage}
}

func scanItem(row pgx.Row) (*entities.OrderItem, error) {
	var item entities.OrderItem
	err := row.Scan(
		&item.ID, &item.OrderID, &item.PartNumber, &item.PartName,
		&item.Manufacturer, &item.Quantity, &item.UnitPrice, &item.Status, &item.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования позиции заявки: %w", err)
	}
	return &item, nil
}

func (r *OrderItemRepository) GetByOrderID(ctx context.Context, orderID uint64) ([]entities.OrderItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM order_items WHERE order_id = $1 ORDER BY id`, itemColumns)
	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения позиций заявки: %w", err)
	}
	defer rows.Close()

	items := make([]entities.OrderItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *OrderItemRepository) FindItem(ctx context.Context, id uint64) (*entities.OrderItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM order_items WHERE id = $1`, itemColumns)
	return scanItem(r.storage.QueryRow(ctx, query, id))
}

func (r *OrderItemRepository) CreateInTx(ctx context.Context, tx pgx.Tx, item *entities.OrderItem) (uint64, error) {
	query := `
		INSERT INTO order_items (order_id, part_number, part_name, manufacturer, quantity, unit_price, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var newID uint64
	err := tx.QueryRow(ctx, query,
		item.OrderID, item.PartNumber, item.PartName, item.Manufacturer,
		item.Quantity, item.UnitPrice, item.Status, item.Notes,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка добавления позиции заявки: %w", err)
	}
	return newID, nil
}

func (r *OrderItemRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, item *entities.OrderItem) error {
	query := `
		UPDATE order_items SET part_number = $1, part_name = $2, manufacturer = $3,
			quantity = $4, unit_price = $5, notes = $6
		WHERE id = $7`

	tag, err := tx.Exec(ctx, query,
		item.PartNumber, item.PartName, item.Manufacturer,
		item.Quantity, item.UnitPrice, item.Notes, item.ID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления позиции заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderItemRepository) SumEstimatedCostInTx(ctx context.Context, tx pgx.Tx, orderID uint64) (float64, error) {
	var total float64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * unit_price), 0) FROM order_items WHERE order_id = $1`,
		orderID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета стоимости заявки: %w", err)
	}
	return total, nil
}

func (r *OrderItemRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM order_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления позиции заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
