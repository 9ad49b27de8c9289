package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parts-order-system/internal/entities"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func makeOrder(status Status) *entities.Order {
	return &entities.Order{
		ID:          42,
		OrderNumber: "ORD-2026-0042",
		Title:       "Замена подшипников конвейера",
		Status:      string(status),
		CreatedBy:   7,
	}
}

func TestProposeTransition_UnknownState(t *testing.T) {
	_, err := ProposeTransition(makeOrder(StatusDraft), Status("shipped"), 1, "", "", testNow)
	var unknownErr *UnknownStateError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, Status("shipped"), unknownErr.Target)
}

func TestProposeTransition_TerminalStatesAreFrozen(t *testing.T) {
	for _, terminal := range []Status{StatusRejected, StatusCompleted, StatusCancelled} {
		order := makeOrder(terminal)
		// Финальный статус заморожен даже для no-op перехода в самого себя.
		for _, target := range []Status{StatusDraft, StatusCancelled, terminal} {
			_, err := ProposeTransition(order, target, 1, "", "", testNow)
			var terminalErr *TerminalStateError
			require.ErrorAs(t, err, &terminalErr, "статус %s, цель %s", terminal, target)
			assert.Equal(t, terminal, terminalErr.Current)
		}
	}
}

func TestProposeTransition_IllegalTransitionCarriesLegalTargets(t *testing.T) {
	_, err := ProposeTransition(makeOrder(StatusDraft), StatusCompleted, 1, "", "", testNow)
	var illegalErr *IllegalTransitionError
	require.ErrorAs(t, err, &illegalErr)
	assert.Equal(t, StatusDraft, illegalErr.From)
	assert.ElementsMatch(t, []Status{StatusCancelled, StatusPendingTechnicalReview}, illegalErr.Legal)
}

func TestProposeTransition_CancelAlwaysLegalFromNonTerminal(t *testing.T) {
	nonTerminal := []Status{
		StatusDraft, StatusPendingTechnicalReview, StatusPendingDepartmentApproval,
		StatusPendingReview, StatusApproved, StatusFinalApproved, StatusInProcurement,
		StatusChangesRequested,
	}
	for _, from := range nonTerminal {
		eff, err := ProposeTransition(makeOrder(from), StatusCancelled, 3, "cancellation", "передумали", testNow)
		require.NoError(t, err, "статус %s", from)
		assert.Equal(t, StatusCancelled, eff.NewStatus)
		assert.True(t, eff.StatusChanged)
		require.NotNil(t, eff.Entry)
		assert.Equal(t, string(from), *eff.Entry.FromStatus)
		assert.Equal(t, string(StatusCancelled), *eff.Entry.ToStatus)
	}
}

func TestProposeTransition_HappyPathProducesEntry(t *testing.T) {
	order := makeOrder(StatusFinalApproved)
	eff, err := ProposeTransition(order, StatusInProcurement, 5, "admin_action", "закупка начата", testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusFinalApproved, eff.FromStatus)
	assert.Equal(t, StatusInProcurement, eff.NewStatus)
	assert.Equal(t, testNow, eff.UpdatedAt)
	require.NotNil(t, eff.Entry)
	assert.Equal(t, uint64(5), eff.Entry.UserID)
	assert.Equal(t, "admin_action", *eff.Entry.ChangeReason)
	assert.False(t, eff.ResetVerdicts)
}

func TestProposeTransition_LegacyAliasNormalized(t *testing.T) {
	// Устаревший pending_review ведёт себя как pending_technical_review.
	eff, err := ProposeTransition(makeOrder(StatusDraft), StatusPendingReview, 1, "submission", "", testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusPendingTechnicalReview, eff.NewStatus)
}

func TestProposeTransition_ResubmissionResetsVerdicts(t *testing.T) {
	eff, err := ProposeTransition(makeOrder(StatusChangesRequested), StatusPendingTechnicalReview, 7, "resubmission", "", testNow)
	require.NoError(t, err)
	assert.True(t, eff.ResetVerdicts)
}

func TestApplyVerdict_QuorumNotMetRecordsVerdictOnly(t *testing.T) {
	order := makeOrder(StatusPendingTechnicalReview)
	assignments := makeAssignments(VerdictPending, VerdictPending)

	eff, err := ApplyVerdict(order, assignments, assignments[0].UserID, VerdictApproved, "ок", testNow)
	require.NoError(t, err)
	assert.False(t, eff.StatusChanged)
	assert.Equal(t, StatusPendingTechnicalReview, eff.NewStatus)
	assert.Nil(t, eff.Entry)
	require.NotNil(t, eff.Assignment)
	assert.Equal(t, string(VerdictApproved), eff.Assignment.Status)
	require.NotNil(t, eff.Assignment.CompletedAt)
	// Исходный срез не мутируется: валидатор чистый.
	assert.Equal(t, string(VerdictPending), assignments[0].Status)
}

func TestApplyVerdict_LastApprovalAdvancesOrder(t *testing.T) {
	order := makeOrder(StatusPendingTechnicalReview)
	assignments := makeAssignments(VerdictApproved, VerdictPending)

	eff, err := ApplyVerdict(order, assignments, assignments[1].UserID, VerdictApproved, "", testNow)
	require.NoError(t, err)
	assert.True(t, eff.StatusChanged)
	assert.Equal(t, StatusPendingDepartmentApproval, eff.NewStatus)
	require.NotNil(t, eff.Entry)
	assert.Equal(t, string(StatusPendingTechnicalReview), *eff.Entry.FromStatus)
	assert.Equal(t, string(StatusPendingDepartmentApproval), *eff.Entry.ToStatus)
}

func TestApplyVerdict_SingleRejectionIsTerminal(t *testing.T) {
	order := makeOrder(StatusPendingTechnicalReview)

	// Вето: один rejected перевешивает уже записанный approved.
	assignments := makeAssignments(VerdictApproved, VerdictPending)
	eff, err := ApplyVerdict(order, assignments, assignments[1].UserID, VerdictRejected, "не та модель", testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, eff.NewStatus)

	// И в обратном порядке вердиктов итог тот же.
	assignments = makeAssignments(VerdictPending, VerdictRejected)
	eff, err = ApplyVerdict(order, assignments, assignments[0].UserID, VerdictApproved, "", testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, eff.NewStatus)
}

func TestApplyVerdict_ChangesRequestedWithoutRejection(t *testing.T) {
	order := makeOrder(StatusPendingTechnicalReview)
	assignments := makeAssignments(VerdictApproved, VerdictPending)

	eff, err := ApplyVerdict(order, assignments, assignments[1].UserID, VerdictChangesRequested, "уточнить количество", testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusChangesRequested, eff.NewStatus)
}

func TestApplyVerdict_RejectsForeignAndRepeatedReviewers(t *testing.T) {
	order := makeOrder(StatusPendingTechnicalReview)
	assignments := makeAssignments(VerdictApproved, VerdictPending)

	_, err := ApplyVerdict(order, assignments, 9999, VerdictApproved, "", testNow)
	assert.ErrorIs(t, err, ErrReviewerNotAssigned)

	// Назначение меняет статус ровно один раз.
	_, err = ApplyVerdict(order, assignments, assignments[0].UserID, VerdictApproved, "", testNow)
	assert.ErrorIs(t, err, ErrVerdictAlreadyRecorded)
}

func TestApplyVerdict_RejectsBadStatesAndVerdicts(t *testing.T) {
	assignments := makeAssignments(VerdictPending)

	_, err := ApplyVerdict(makeOrder(StatusDraft), assignments, assignments[0].UserID, VerdictApproved, "", testNow)
	var illegalErr *IllegalTransitionError
	assert.ErrorAs(t, err, &illegalErr)

	_, err = ApplyVerdict(makeOrder(StatusCancelled), assignments, assignments[0].UserID, VerdictApproved, "", testNow)
	var terminalErr *TerminalStateError
	assert.ErrorAs(t, err, &terminalErr)

	_, err = ApplyVerdict(makeOrder(StatusPendingTechnicalReview), assignments, assignments[0].UserID, VerdictPending, "", testNow)
	assert.ErrorIs(t, err, ErrUnknownVerdict)
}
