package constants

//============== РОЛИ ==============

// Коды ролей пользователей. Используются в бизнес-логике для надежности.
const (
	RoleAdmin    = "ADMIN"
	RoleEngineer = "ENGINEER"
	RoleReviewer = "REVIEWER"
)

//============== ТИПЫ ПРОВЕРОК ==============

// Тип ревью-гейта. Сейчас поддерживается один: техническая проверка.
const (
	ReviewerTypeTechnical = "technical"
)

//============== ПРИЧИНЫ СМЕНЫ СТАТУСА ==============

// Категориальные теги для поля change_reason в журнале workflow_entries.
const (
	ChangeReasonSubmission   = "submission"
	ChangeReasonReview       = "review"
	ChangeReasonResubmission = "resubmission"
	ChangeReasonAdminAction  = "admin_action"
	ChangeReasonCancellation = "cancellation"
	ChangeReasonNote         = "note"
)

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis/кеше.
const (
	// Ключ для кеша отображаемых данных пользователя (ФИО, телефон).
	// Формат: actor_display:<userID> -> JSON
	CacheKeyActorDisplay = "actor_display:%d"
)

//============== УРОВНИ СРОЧНОСТИ ==============

const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

var UrgencyLevels = []string{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}

func IsValidUrgency(level string) bool {
	for _, u := range UrgencyLevels {
		if u == level {
			return true
		}
	}
	return false
}
