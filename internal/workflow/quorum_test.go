package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parts-order-system/internal/entities"
)

func makeAssignments(statuses ...Verdict) []entities.OrderReviewer {
	assignments := make([]entities.OrderReviewer, 0, len(statuses))
	for i, s := range statuses {
		assignments = append(assignments, entities.OrderReviewer{
			ID:      uint64(i + 1),
			OrderID: 1,
			UserID:  uint64(100 + i),
			Status:  string(s),
		})
	}
	return assignments
}

func TestEvaluateQuorum_EmptySetStaysPending(t *testing.T) {
	// Заявка без проверяющих никогда не продвигается сама.
	assert.Equal(t, QuorumPending, EvaluateQuorum(nil))
	assert.Equal(t, QuorumPending, EvaluateQuorum([]entities.OrderReviewer{}))
}

func TestEvaluateQuorum_UnanimityRequiredForApproval(t *testing.T) {
	assert.Equal(t, QuorumApproved, EvaluateQuorum(makeAssignments(VerdictApproved, VerdictApproved, VerdictApproved)))
	assert.Equal(t, QuorumPending, EvaluateQuorum(makeAssignments(VerdictApproved, VerdictApproved, VerdictPending)))
	assert.Equal(t, QuorumPending, EvaluateQuorum(makeAssignments(VerdictPending, VerdictPending)))
}

func TestEvaluateQuorum_SingleRejectionVetoes(t *testing.T) {
	cases := [][]entities.OrderReviewer{
		makeAssignments(VerdictRejected),
		makeAssignments(VerdictApproved, VerdictRejected, VerdictPending),
		makeAssignments(VerdictChangesRequested, VerdictRejected),
		makeAssignments(VerdictRejected, VerdictApproved, VerdictApproved),
	}
	for _, assignments := range cases {
		assert.Equal(t, QuorumRejected, EvaluateQuorum(assignments))
	}
}

func TestEvaluateQuorum_ChangesRequestedBeatsPendingAndApproved(t *testing.T) {
	assert.Equal(t, QuorumChangesRequested, EvaluateQuorum(makeAssignments(VerdictApproved, VerdictChangesRequested)))
	assert.Equal(t, QuorumChangesRequested, EvaluateQuorum(makeAssignments(VerdictPending, VerdictChangesRequested)))
}
