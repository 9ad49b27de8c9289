package workflow

import "parts-order-system/internal/entities"

// Verdict — статус одного назначения проверяющего.
type Verdict string

const (
	VerdictPending          Verdict = "pending"
	VerdictApproved         Verdict = "approved"
	VerdictRejected         Verdict = "rejected"
	VerdictChangesRequested Verdict = "changes_requested"
)

func KnownVerdict(v Verdict) bool {
	switch v {
	case VerdictPending, VerdictApproved, VerdictRejected, VerdictChangesRequested:
		return true
	}
	return false
}

// QuorumResult — агрегированный итог по всем назначениям одного гейта.
type QuorumResult string

const (
	QuorumPending          QuorumResult = "pending"
	QuorumApproved         QuorumResult = "approved"
	QuorumRejected         QuorumResult = "rejected"
	QuorumChangesRequested QuorumResult = "changes_requested"
)

// EvaluateQuorum считает итог проверки по полному набору назначений.
//
// Правила несимметричны намеренно: для блокировки достаточно одного
// проверяющего, для продвижения нужны все.
//   - хотя бы один rejected         -> Rejected (перебивает всё остальное);
//   - иначе хотя бы один changes_requested -> ChangesRequested;
//   - иначе хотя бы один pending    -> Pending;
//   - все approved                  -> Approved.
//
// Пустой набор назначений — всегда Pending: заявка без проверяющих
// не может продвинуться сама собой.
func EvaluateQuorum(assignments []entities.OrderReviewer) QuorumResult {
	if len(assignments) == 0 {
		return QuorumPending
	}

	hasPending := false
	hasChangesRequested := false
	for _, a := range assignments {
		switch Verdict(a.Status) {
		case VerdictRejected:
			return QuorumRejected
		case VerdictChangesRequested:
			hasChangesRequested = true
		case VerdictApproved:
			// учитывается только при единогласии
		default:
			hasPending = true
		}
	}

	if hasChangesRequested {
		return QuorumChangesRequested
	}
	if hasPending {
		return QuorumPending
	}
	return QuorumApproved
}
