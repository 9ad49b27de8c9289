package entities

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowEntry — неизменяемая строка журнала заявки.
// Запись с пустыми from_status и to_status — это заметка без смены статуса.
type WorkflowEntry struct {
	ID           uint64     `db:"id"`
	OrderID      uint64     `db:"order_id"`
	FromStatus   *string    `db:"from_status"`
	ToStatus     *string    `db:"to_status"`
	UserID       uint64     `db:"user_id"`
	ChangeReason *string    `db:"change_reason"`
	Comments     *string    `db:"comments"`
	TxID         *uuid.UUID `db:"tx_id"`
	CreatedAt    time.Time  `db:"created_at"`
}
