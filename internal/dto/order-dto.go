package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateOrderDTO struct {
	Title                 string               `json:"title" validate:"required,min=5,max=255"`
	Description           null.String          `json:"description,omitempty"`
	EquipmentName         null.String          `json:"equipment_name,omitempty"`
	EquipmentModel        null.String          `json:"equipment_model,omitempty"`
	EquipmentSerial       null.String          `json:"equipment_serial,omitempty"`
	EquipmentLocation     null.String          `json:"equipment_location,omitempty"`
	UrgencyLevel          string               `json:"urgency_level" validate:"omitempty,oneof=low medium high critical"`
	RequestedDeliveryDate null.String          `json:"requested_delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes                 null.String          `json:"notes,omitempty"`
	Currency              string               `json:"currency" validate:"omitempty,len=3,uppercase"`
	Items                 []CreateOrderItemDTO `json:"items,omitempty" validate:"omitempty,dive"`
}

type UpdateOrderDTO struct {
	Title                 null.String `json:"title,omitempty" validate:"omitempty,min=5,max=255"`
	Description           null.String `json:"description,omitempty"`
	EquipmentName         null.String `json:"equipment_name,omitempty"`
	EquipmentModel        null.String `json:"equipment_model,omitempty"`
	EquipmentSerial       null.String `json:"equipment_serial,omitempty"`
	EquipmentLocation     null.String `json:"equipment_location,omitempty"`
	UrgencyLevel          null.String `json:"urgency_level,omitempty" validate:"omitempty,oneof=low medium high critical"`
	RequestedDeliveryDate null.String `json:"requested_delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes                 null.String `json:"notes,omitempty"`
}

// OrderDTO: что сервер отправляет клиенту в ответ.
type OrderDTO struct {
	ID                    uint64       `json:"id"`
	OrderNumber           string       `json:"order_number"`
	Title                 string       `json:"title"`
	Description           string       `json:"description,omitempty"`
	EquipmentName         string       `json:"equipment_name,omitempty"`
	EquipmentModel        string       `json:"equipment_model,omitempty"`
	EquipmentSerial       string       `json:"equipment_serial,omitempty"`
	EquipmentLocation     string       `json:"equipment_location,omitempty"`
	UrgencyLevel          string       `json:"urgency_level"`
	RequestedDeliveryDate string       `json:"requested_delivery_date,omitempty"`
	Notes                 string       `json:"notes,omitempty"`
	TotalEstimatedCost    float64      `json:"total_estimated_cost"`
	Currency              string       `json:"currency"`
	Status                string       `json:"status"`
	Creator               ShortUserDTO `json:"creator"`
	CreatedAt             string       `json:"created_at"`
	UpdatedAt             string       `json:"updated_at"`
}

// OrderDetailDTO — карточка заявки целиком: позиции, проверяющие, журнал.
type OrderDetailDTO struct {
	OrderDTO
	Items     []OrderItemDTO          `json:"items"`
	Reviewers []ReviewerAssignmentDTO `json:"reviewers"`
	Workflow  []WorkflowEntryDTO      `json:"workflow"`
}
