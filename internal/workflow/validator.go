package workflow

import (
	"time"

	"parts-order-system/internal/entities"
	"parts-order-system/pkg/constants"
)

// Effect — результат принятого перехода. Валидатор чистый: он не пишет
// в хранилище, а возвращает набор мутаций, которые слой персистентности
// обязан применить в одной транзакции.
type Effect struct {
	OrderID    uint64
	FromStatus Status
	NewStatus  Status
	// StatusChanged == false у вердикта, не собравшего кворум:
	// назначение обновляется, заявка остаётся на месте.
	StatusChanged bool
	UpdatedAt     time.Time
	// Entry — строка журнала. nil, когда статус не меняется.
	Entry *entities.WorkflowEntry
	// Assignment — обновлённое назначение проверяющего (только путь вердикта).
	Assignment *entities.OrderReviewer
	// ResetVerdicts — при повторной отправке после changes_requested все
	// назначения гейта возвращаются в pending: старые вердикты не должны
	// засчитываться в новый кворум.
	ResetVerdicts bool
}

// ProposeTransition валидирует прямой запрос на смену статуса.
//
// Порядок проверок фиксирован: неизвестный статус, затем заморозка
// финального состояния (включая no-op в самого себя), затем граф.
// Переход в cancelled легален из любого нефинального статуса.
func ProposeTransition(order *entities.Order, target Status, actorID uint64, reason, comments string, now time.Time) (*Effect, error) {
	if !KnownStatus(target) {
		return nil, &UnknownStateError{Target: target}
	}

	current := Status(order.Status)
	if IsTerminal(current) {
		return nil, &TerminalStateError{Current: current}
	}

	target = Normalize(target)
	if !CanTransition(current, target) {
		return nil, &IllegalTransitionError{From: current, To: target, Legal: LegalTargets(current)}
	}

	eff := &Effect{
		OrderID:       order.ID,
		FromStatus:    current,
		NewStatus:     target,
		StatusChanged: true,
		UpdatedAt:     now,
		Entry:         newEntry(order.ID, current, target, actorID, reason, comments, now),
	}
	if Normalize(current) == StatusChangesRequested && target == StatusPendingTechnicalReview {
		eff.ResetVerdicts = true
	}
	return eff, nil
}

// ApplyVerdict обрабатывает вердикт одного проверяющего.
//
// Целевой статус заявки здесь не принимается от вызывающего: он выводится
// заново из полного набора назначений после записи вердикта. Статус заявки —
// чистая функция записанных вердиктов, обойти кворум нельзя.
func ApplyVerdict(order *entities.Order, assignments []entities.OrderReviewer, reviewerID uint64, verdict Verdict, comments string, now time.Time) (*Effect, error) {
	current := Status(order.Status)
	if IsTerminal(current) {
		return nil, &TerminalStateError{Current: current}
	}
	if Normalize(current) != StatusPendingTechnicalReview {
		return nil, &IllegalTransitionError{From: current, To: current, Legal: LegalTargets(current)}
	}

	if !KnownVerdict(verdict) || verdict == VerdictPending {
		return nil, ErrUnknownVerdict
	}

	idx := -1
	for i := range assignments {
		if assignments[i].UserID == reviewerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrReviewerNotAssigned
	}
	if Verdict(assignments[idx].Status) != VerdictPending {
		return nil, ErrVerdictAlreadyRecorded
	}

	updated := assignments[idx]
	updated.Status = string(verdict)
	if comments != "" {
		updated.Comments = &comments
	}
	completedAt := now
	updated.CompletedAt = &completedAt

	// Кворум пересчитывается по полному набору, включая свежий вердикт.
	snapshot := make([]entities.OrderReviewer, len(assignments))
	copy(snapshot, assignments)
	snapshot[idx] = updated

	eff := &Effect{
		OrderID:    order.ID,
		FromStatus: current,
		NewStatus:  current,
		UpdatedAt:  now,
		Assignment: &updated,
	}

	var target Status
	switch EvaluateQuorum(snapshot) {
	case QuorumRejected:
		target = StatusRejected
	case QuorumChangesRequested:
		target = StatusChangesRequested
	case QuorumApproved:
		target = StatusPendingDepartmentApproval
	default:
		// Кворум не собран: вердикт записан, заявка не двигается.
		return eff, nil
	}

	eff.NewStatus = target
	eff.StatusChanged = true
	eff.Entry = newEntry(order.ID, current, target, reviewerID, constants.ChangeReasonReview, comments, now)
	return eff, nil
}

// NoteEffect формирует заметку: строку журнала без смены статуса.
func NoteEffect(order *entities.Order, actorID uint64, comments string, now time.Time) *Effect {
	entry := &entities.WorkflowEntry{
		OrderID:   order.ID,
		UserID:    actorID,
		Comments:  &comments,
		CreatedAt: now,
	}
	reason := constants.ChangeReasonNote
	entry.ChangeReason = &reason

	return &Effect{
		OrderID:    order.ID,
		FromStatus: Status(order.Status),
		NewStatus:  Status(order.Status),
		UpdatedAt:  now,
		Entry:      entry,
	}
}

func newEntry(orderID uint64, from, to Status, actorID uint64, reason, comments string, now time.Time) *entities.WorkflowEntry {
	fromStr := string(from)
	toStr := string(to)
	entry := &entities.WorkflowEntry{
		OrderID:    orderID,
		FromStatus: &fromStr,
		ToStatus:   &toStr,
		UserID:     actorID,
		CreatedAt:  now,
	}
	if reason != "" {
		entry.ChangeReason = &reason
	}
	if comments != "" {
		entry.Comments = &comments
	}
	return entry
}
