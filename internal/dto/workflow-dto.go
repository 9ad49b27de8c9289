package dto

// WorkflowEntryDTO — строка журнала заявки с разрешёнными данными актора.
// ФИО и телефон подтягиваются из users при чтении, в журнале не дублируются.
type WorkflowEntryDTO struct {
	ID           uint64       `json:"id"`
	OrderID      uint64       `json:"order_id"`
	FromStatus   string       `json:"from_status,omitempty"`
	ToStatus     string       `json:"to_status,omitempty"`
	Actor        ShortUserDTO `json:"actor"`
	ChangeReason string       `json:"change_reason,omitempty"`
	Comments     string       `json:"comments,omitempty"`
	IsNote       bool         `json:"is_note"`
	CreatedAt    string       `json:"created_at"`
}
