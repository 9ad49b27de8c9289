package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"parts-order-system/internal/entities"
	"parts-order-system/internal/workflow"
	apperrors "parts-order-system/pkg/errors"
	"parts-order-system/pkg/types"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ЕДИНАЯ КАРТА ПОЛЕЙ (Фильтр + Сортировка)
var orderFieldMap = map[string]string{
	"id":            "ord.id",
	"order_number":  "ord.order_number",
	"title":         "ord.title",
	"urgency_level": "ord.urgency_level",
	"status":        "ord.status",
	"created_by":    "ord.created_by",
	"currency":      "ord.currency",
	"created_at":    "ord.created_at",
	"updated_at":    "ord.updated_at",
}

const orderColumns = `ord.id, ord.order_number, ord.title, ord.description,
	ord.equipment_name, ord.equipment_model, ord.equipment_serial, ord.equipment_location,
	ord.urgency_level, ord.requested_delivery_date, ord.notes,
	ord.total_estimated_cost, ord.currency, ord.status, ord.created_by,
	ord.created_at, ord.updated_at`

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error)
	FindOrder(ctx context.Context, id uint64) (*entities.Order, error)
	FindOrderForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error)
	CreateOrderInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) (uint64, error)
	UpdateOrderInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) error
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, updatedAt time.Time) error
	// UpdateStatusCAS меняет статус compare-and-swap'ом по ожидаемому
	// текущему статусу. 0 затронутых строк — конкурентное изменение.
	UpdateStatusCAS(ctx context.Context, tx pgx.Tx, id uint64, expectedStatus, newStatus string, updatedAt time.Time) error
	UpdateTotalInTx(ctx context.Context, tx pgx.Tx, id uint64, total float64) error
	NextOrderNumber(ctx context.Context, tx pgx.Tx) (string, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var order entities.Order
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.Title, &order.Description,
		&order.EquipmentName, &order.EquipmentModel, &order.EquipmentSerial, &order.EquipmentLocation,
		&order.UrgencyLevel, &order.RequestedDeliveryDate, &order.Notes,
		&order.TotalEstimatedCost, &order.Currency, &order.Status, &order.CreatedBy,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования заявки: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	builder := psql.Select(orderColumns).From("orders ord")
	countBuilder := psql.Select("COUNT(*)").From("orders ord")

	for field, value := range filter.Filter {
		column, ok := orderFieldMap[field]
		if !ok {
			continue
		}
		builder = builder.Where(sq.Eq{column: value})
		countBuilder = countBuilder.Where(sq.Eq{column: value})
	}

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		cond := sq.Or{
			sq.ILike{"ord.title": search},
			sq.ILike{"ord.order_number": search},
			sq.ILike{"ord.equipment_name": search},
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	var total uint64
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки count-запроса: %w", err)
	}
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заявок: %w", err)
	}

	orderApplied := false
	for field, direction := range filter.Sort {
		if column, ok := orderFieldMap[field]; ok {
			builder = builder.OrderBy(column + " " + direction)
			orderApplied = true
		}
	}
	if !orderApplied {
		builder = builder.OrderBy("ord.created_at DESC")
	}

	// Выгрузка в отчёт читает без пагинации.
	if filter.WithPagination {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка заявок: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заявок: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *order)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) FindOrder(ctx context.Context, id uint64) (*entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ord WHERE ord.id = $1`, orderColumns)
	return scanOrder(r.storage.QueryRow(ctx, query, id))
}

// FindOrderForUpdateInTx читает заявку с блокировкой строки.
// Сериализует read-modify-write по одной заявке: конкурентные вердикты
// по одной заявке выстраиваются в очередь, по разным — не мешают друг другу.
func (r *OrderRepository) FindOrderForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders ord WHERE ord.id = $1 FOR UPDATE`, orderColumns)
	return scanOrder(tx.QueryRow(ctx, query, id))
}

func (r *OrderRepository) CreateOrderInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) (uint64, error) {
	query := `
		INSERT INTO orders (order_number, title, description, equipment_name, equipment_model,
			equipment_serial, equipment_location, urgency_level, requested_delivery_date, notes,
			total_estimated_cost, currency, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id`

	var newID uint64
	err := tx.QueryRow(ctx, query,
		order.OrderNumber, order.Title, order.Description, order.EquipmentName, order.EquipmentModel,
		order.EquipmentSerial, order.EquipmentLocation, order.UrgencyLevel, order.RequestedDeliveryDate, order.Notes,
		order.TotalEstimatedCost, order.Currency, order.Status, order.CreatedBy,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return newID, nil
}

func (r *OrderRepository) UpdateOrderInTx(ctx context.Context, tx pgx.Tx, order *entities.Order) error {
	query := `
		UPDATE orders SET title = $1, description = $2, equipment_name = $3, equipment_model = $4,
			equipment_serial = $5, equipment_location = $6, urgency_level = $7,
			requested_delivery_date = $8, notes = $9, updated_at = NOW()
		WHERE id = $10`

	tag, err := tx.Exec(ctx, query,
		order.Title, order.Description, order.EquipmentName, order.EquipmentModel,
		order.EquipmentSerial, order.EquipmentLocation, order.UrgencyLevel,
		order.RequestedDeliveryDate, order.Notes, order.ID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, newStatus string, updatedAt time.Time) error {
	tag, err := tx.Exec(ctx, `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`, newStatus, updatedAt, id)
	if err != nil {
		return fmt.Errorf("ошибка смены статуса заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateStatusCAS(ctx context.Context, tx pgx.Tx, id uint64, expectedStatus, newStatus string, updatedAt time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		newStatus, updatedAt, id, expectedStatus,
	)
	if err != nil {
		return fmt.Errorf("ошибка смены статуса заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workflow.ErrConcurrentModification
	}
	return nil
}

func (r *OrderRepository) UpdateTotalInTx(ctx context.Context, tx pgx.Tx, id uint64, total float64) error {
	_, err := tx.Exec(ctx, `UPDATE orders SET total_estimated_cost = $1, updated_at = NOW() WHERE id = $2`, total, id)
	if err != nil {
		return fmt.Errorf("ошибка пересчета стоимости заявки: %w", err)
	}
	return nil
}

// NextOrderNumber выдаёт следующий человекочитаемый номер вида ORD-2026-0001.
// Номер генерируется при создании и далее не меняется.
func (r *OrderRepository) NextOrderNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	var seq uint64
	if err := tx.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
		return "", fmt.Errorf("ошибка генерации номера заявки: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%04d", time.Now().Year(), seq), nil
}
