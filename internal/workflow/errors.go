package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrQuorumNotMet — кворум ещё не собран; вердикт записан, но заявка
	// не продвигается. Для проверяющего это не ошибка.
	ErrQuorumNotMet = errors.New("кворум проверяющих ещё не собран")

	// ErrConcurrentModification — конкурентное изменение той же заявки.
	// Политика: повторить с чтением свежего состояния, ограниченное число раз.
	ErrConcurrentModification = errors.New("заявка изменена параллельным запросом")

	// ErrAuditWriteFailure — статус заявки записан, а журнал — нет.
	// Единственная фатальная рассинхронизация этой схемы: коммит должен быть
	// атомарным, а если это всё же случилось — логируем для ручной сверки.
	ErrAuditWriteFailure = errors.New("не удалось записать строку журнала заявки")

	ErrReviewerNotAssigned    = errors.New("пользователь не назначен проверяющим этой заявки")
	ErrVerdictAlreadyRecorded = errors.New("вердикт проверяющего уже записан")
	ErrUnknownVerdict         = errors.New("недопустимый вердикт проверяющего")
)

// UnknownStateError — целевой статус не входит в закрытый набор.
// Ошибка вызывающего кода, не повторяется.
type UnknownStateError struct {
	Target Status
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("неизвестный статус заявки: %q", e.Target)
}

// TerminalStateError — попытка изменить закрытую заявку.
type TerminalStateError struct {
	Current Status
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("заявка уже финализирована в статусе %q", e.Current)
}

// IllegalTransitionError — перехода нет в графе. Несёт список легальных
// целей, чтобы вызывающий мог исправиться.
type IllegalTransitionError struct {
	From  Status
	To    Status
	Legal []Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("переход %q -> %q запрещён, допустимые цели: %v", e.From, e.To, e.Legal)
}
