package entities

import "time"

// OrderReviewer — назначение проверяющего на заявку для одного ревью-гейта.
// Набор назначений фиксируется при отправке заявки на проверку;
// каждая запись меняет статус ровно один раз: pending -> вердикт.
type OrderReviewer struct {
	ID           uint64     `db:"id"`
	OrderID      uint64     `db:"order_id"`
	UserID       uint64     `db:"user_id"`
	ReviewerType string     `db:"reviewer_type"`
	Status       string     `db:"status"`
	Comments     *string    `db:"comments"`
	AssignedAt   time.Time  `db:"assigned_at"`
	CompletedAt  *time.Time `db:"completed_at"`
}
