package dto

import "github.com/aarondl/null/v8"

type CreateOrderItemDTO struct {
	PartNumber   null.String  `json:"part_number,omitempty"`
	PartName     string       `json:"part_name" validate:"required,min=1,max=255"`
	Manufacturer null.String  `json:"manufacturer,omitempty"`
	Quantity     int          `json:"quantity" validate:"required,gte=1"`
	UnitPrice    null.Float64 `json:"unit_price,omitempty" validate:"omitempty"`
	Notes        null.String  `json:"notes,omitempty"`
}

type UpdateOrderItemDTO struct {
	PartNumber   null.String  `json:"part_number,omitempty"`
	PartName     null.String  `json:"part_name,omitempty" validate:"omitempty,min=1,max=255"`
	Manufacturer null.String  `json:"manufacturer,omitempty"`
	Quantity     null.Int     `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	UnitPrice    null.Float64 `json:"unit_price,omitempty"`
	Notes        null.String  `json:"notes,omitempty"`
}

type OrderItemDTO struct {
	ID           uint64  `json:"id"`
	OrderID      uint64  `json:"order_id"`
	PartNumber   string  `json:"part_number,omitempty"`
	PartName     string  `json:"part_name"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price,omitempty"`
	TotalPrice   float64 `json:"total_price,omitempty"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes,omitempty"`
}
