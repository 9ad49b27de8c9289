package workflow

import "sort"

// Status — состояние жизненного цикла заявки. Закрытый набор:
// статус заявки меняется только через валидатор переходов.
type Status string

const (
	StatusDraft                     Status = "draft"
	StatusPendingTechnicalReview    Status = "pending_technical_review"
	StatusPendingDepartmentApproval Status = "pending_department_approval"
	// StatusPendingReview — устаревший общий алиас, принимается на входе
	// и нормализуется в pending_technical_review.
	StatusPendingReview    Status = "pending_review"
	StatusApproved         Status = "approved"
	StatusFinalApproved    Status = "final_approved"
	StatusInProcurement    Status = "in_procurement"
	StatusRejected         Status = "rejected"
	StatusChangesRequested Status = "changes_requested"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

var knownStatuses = map[Status]struct{}{
	StatusDraft:                     {},
	StatusPendingTechnicalReview:    {},
	StatusPendingDepartmentApproval: {},
	StatusPendingReview:             {},
	StatusApproved:                  {},
	StatusFinalApproved:             {},
	StatusInProcurement:             {},
	StatusRejected:                  {},
	StatusChangesRequested:          {},
	StatusCompleted:                 {},
	StatusCancelled:                 {},
}

// Финальные статусы: исходящих переходов нет, заявка заморожена.
var terminalStatuses = map[Status]struct{}{
	StatusRejected:  {},
	StatusCompleted: {},
	StatusCancelled: {},
}

// Граф легальных переходов. Переход в cancelled из любого нефинального
// статуса разрешён отдельно, в графе его нет.
var validNext = map[Status]map[Status]bool{
	StatusDraft: {StatusPendingTechnicalReview: true},
	StatusPendingTechnicalReview: {
		StatusPendingDepartmentApproval: true,
		StatusRejected:                  true,
		StatusChangesRequested:          true,
	},
	StatusChangesRequested: {StatusPendingTechnicalReview: true},
	StatusPendingDepartmentApproval: {
		StatusFinalApproved: true,
		StatusRejected:      true,
	},
	StatusFinalApproved: {StatusInProcurement: true},
	StatusInProcurement: {StatusCompleted: true},
}

func KnownStatus(s Status) bool {
	_, ok := knownStatuses[s]
	return ok
}

func IsTerminal(s Status) bool {
	_, ok := terminalStatuses[s]
	return ok
}

// Normalize сводит устаревшие алиасы к каноническим статусам.
func Normalize(s Status) Status {
	if s == StatusPendingReview {
		return StatusPendingTechnicalReview
	}
	return s
}

func CanTransition(from, to Status) bool {
	from, to = Normalize(from), Normalize(to)
	if to == StatusCancelled {
		return !IsTerminal(from)
	}
	return validNext[from][to]
}

// LegalTargets возвращает отсортированный список статусов, достижимых из from.
// Используется в тексте ошибки IllegalTransition для подсказки вызывающему.
func LegalTargets(from Status) []Status {
	from = Normalize(from)
	if IsTerminal(from) {
		return nil
	}
	targets := []Status{StatusCancelled}
	for to := range validNext[from] {
		targets = append(targets, to)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}
