package dto

// SubmitForReviewDTO: отправка заявки на техническую проверку.
// Минимум и максимум проверяющих задаются конфигом и проверяются сервисом.
type SubmitForReviewDTO struct {
	ReviewerIDs []uint64 `json:"reviewer_ids" validate:"required,min=1,unique,dive,gt=0"`
	Comments    string   `json:"comments,omitempty"`
}

type RecordVerdictDTO struct {
	Verdict  string `json:"verdict" validate:"required,oneof=approved rejected changes_requested"`
	Comments string `json:"comments,omitempty"`
}

// ForceTransitionDTO: административная смена статуса в обход кворума.
type ForceTransitionDTO struct {
	Target   string `json:"target" validate:"required"`
	Reason   string `json:"reason" validate:"required,min=3,max=64"`
	Comments string `json:"comments,omitempty"`
}

type CreateNoteDTO struct {
	Comments string `json:"comments" validate:"required,min=1"`
}

type ReviewerAssignmentDTO struct {
	ID           uint64       `json:"id"`
	OrderID      uint64       `json:"order_id"`
	Reviewer     ShortUserDTO `json:"reviewer"`
	ReviewerType string       `json:"reviewer_type"`
	Status       string       `json:"status"`
	Comments     string       `json:"comments,omitempty"`
	AssignedAt   string       `json:"assigned_at"`
	CompletedAt  string       `json:"completed_at,omitempty"`
}

// VerdictResultDTO — итог записанного вердикта для проверяющего.
type VerdictResultDTO struct {
	OrderID       uint64 `json:"order_id"`
	OrderStatus   string `json:"order_status"`
	StatusChanged bool   `json:"status_changed"`
	QuorumResult  string `json:"quorum_result"`
}
