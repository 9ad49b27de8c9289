package entities

import (
	"time"
)

type Order struct {
	ID                    uint64     `db:"id"`
	OrderNumber           string     `db:"order_number"`
	Title                 string     `db:"title"`
	Description           *string    `db:"description"`
	EquipmentName         *string    `db:"equipment_name"`
	EquipmentModel        *string    `db:"equipment_model"`
	EquipmentSerial       *string    `db:"equipment_serial"`
	EquipmentLocation     *string    `db:"equipment_location"`
	UrgencyLevel          string     `db:"urgency_level"`
	RequestedDeliveryDate *time.Time `db:"requested_delivery_date"`
	Notes                 *string    `db:"notes"`
	TotalEstimatedCost    float64    `db:"total_estimated_cost"`
	Currency              string     `db:"currency"`
	Status                string     `db:"status"`
	CreatedBy             uint64     `db:"created_by"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}
