package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/entities"
	"parts-order-system/internal/workflow"
	"parts-order-system/pkg/constants"
	apperrors "parts-order-system/pkg/errors"
)

type reviewServiceFixture struct {
	service   ReviewServiceInterface
	orders    *fakeOrderRepo
	reviewers *fakeReviewerRepo
	journal   *fakeWorkflowRepo
}

// newReviewFixture готовит заявку на технической проверке
// с назначенными проверяющими.
func newReviewFixture(t *testing.T, reviewerIDs ...uint64) (*reviewServiceFixture, *entities.Order) {
	t.Helper()

	f := &reviewServiceFixture{
		orders:    newFakeOrderRepo(),
		reviewers: newFakeReviewerRepo(),
		journal:   newFakeWorkflowRepo(),
	}
	f.service = NewReviewService(f.orders, f.reviewers, f.journal, &fakeTxManager{}, zap.NewNop())

	order := f.orders.add(&entities.Order{
		OrderNumber: "ORD-2026-0007",
		Title:       "Редуктор привода мельницы",
		Status:      string(workflow.StatusPendingTechnicalReview),
		CreatedBy:   10,
	})
	require.NoError(t, f.reviewers.CreateBulkInTx(context.Background(), nil, order.ID, constants.ReviewerTypeTechnical, reviewerIDs))
	return f, order
}

func TestRecordVerdict(t *testing.T) {
	ctx := context.Background()

	t.Run("первый approve не двигает заявку", func(t *testing.T) {
		f, order := newReviewFixture(t, 21, 22)

		result, err := f.service.RecordVerdict(ctx, 21, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		require.NoError(t, err)
		assert.False(t, result.StatusChanged)
		assert.Equal(t, string(workflow.QuorumPending), result.QuorumResult)
		assert.Equal(t, string(workflow.StatusPendingTechnicalReview), result.OrderStatus)

		stored, _ := f.orders.FindOrder(ctx, order.ID)
		assert.Equal(t, string(workflow.StatusPendingTechnicalReview), stored.Status)
		assert.Empty(t, f.journal.entries, "без кворума перехода в журнале нет")
	})

	t.Run("последний approve продвигает заявку", func(t *testing.T) {
		f, order := newReviewFixture(t, 21, 22)

		_, err := f.service.RecordVerdict(ctx, 21, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		require.NoError(t, err)

		result, err := f.service.RecordVerdict(ctx, 22, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		require.NoError(t, err)
		assert.True(t, result.StatusChanged)
		assert.Equal(t, string(workflow.QuorumApproved), result.QuorumResult)
		assert.Equal(t, string(workflow.StatusPendingDepartmentApproval), result.OrderStatus)

		require.Len(t, f.journal.entries, 1, "цепочка вердиктов даёт ровно одну строку перехода")
		entry := f.journal.entries[0]
		assert.Equal(t, string(workflow.StatusPendingTechnicalReview), *entry.FromStatus)
		assert.Equal(t, string(workflow.StatusPendingDepartmentApproval), *entry.ToStatus)
		assert.Equal(t, constants.ChangeReasonReview, *entry.ChangeReason)
		assert.Equal(t, uint64(22), entry.UserID, "автор перехода — проверяющий, замкнувший кворум")
	})

	t.Run("одно вето отклоняет заявку независимо от остальных", func(t *testing.T) {
		f, order := newReviewFixture(t, 21, 22, 23)

		_, err := f.service.RecordVerdict(ctx, 21, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		require.NoError(t, err)

		result, err := f.service.RecordVerdict(ctx, 22, order.ID, dto.RecordVerdictDTO{
			Verdict:  "rejected",
			Comments: "несовместимо с установленным оборудованием",
		})
		require.NoError(t, err)
		assert.True(t, result.StatusChanged)
		assert.Equal(t, string(workflow.QuorumRejected), result.QuorumResult)
		assert.Equal(t, string(workflow.StatusRejected), result.OrderStatus)

		stored, _ := f.orders.FindOrder(ctx, order.ID)
		assert.Equal(t, string(workflow.StatusRejected), stored.Status)
	})

	t.Run("changes_requested сильнее approve, но слабее rejected", func(t *testing.T) {
		f, order := newReviewFixture(t, 21, 22)

		_, err := f.service.RecordVerdict(ctx, 21, order.ID, dto.RecordVerdictDTO{
			Verdict:  "changes_requested",
			Comments: "уточнить каталожные номера",
		})
		require.NoError(t, err)

		result, err := f.service.RecordVerdict(ctx, 22, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		require.NoError(t, err)
		assert.Equal(t, string(workflow.QuorumChangesRequested), result.QuorumResult)
		assert.Equal(t, string(workflow.StatusChangesRequested), result.OrderStatus)
	})

	t.Run("не назначенный пользователь не голосует", func(t *testing.T) {
		f, order := newReviewFixture(t, 21, 22)

		_, err := f.service.RecordVerdict(ctx, 99, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("повторный вердикт отклоняется", func(t *testing.T) {
		f, order := newReviewFixture(t, 21, 22)

		_, err := f.service.RecordVerdict(ctx, 21, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		require.NoError(t, err)

		_, err = f.service.RecordVerdict(ctx, 21, order.ID, dto.RecordVerdictDTO{Verdict: "rejected"})
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Code)

		stored, _ := f.orders.FindOrder(ctx, order.ID)
		assert.Equal(t, string(workflow.StatusPendingTechnicalReview), stored.Status, "сменить уже записанный вердикт нельзя")
	})

	t.Run("вердикт вне этапа проверки отклоняется", func(t *testing.T) {
		f, order := newReviewFixture(t, 21, 22)
		stored := f.orders.orders[order.ID]
		stored.Status = string(workflow.StatusPendingDepartmentApproval)

		_, err := f.service.RecordVerdict(ctx, 21, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Code)
	})

	t.Run("вердикт по несуществующей заявке", func(t *testing.T) {
		f, _ := newReviewFixture(t, 21)

		_, err := f.service.RecordVerdict(ctx, 21, 777, dto.RecordVerdictDTO{Verdict: "approved"})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("отказ журнала не даёт зафиксировать переход", func(t *testing.T) {
		f, order := newReviewFixture(t, 21, 22)

		_, err := f.service.RecordVerdict(ctx, 21, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		require.NoError(t, err)

		f.journal.failing = true
		result, err := f.service.RecordVerdict(ctx, 22, order.ID, dto.RecordVerdictDTO{Verdict: "approved"})
		require.ErrorIs(t, err, workflow.ErrAuditWriteFailure, "отказ журнала доходит до вызывающего, не глотается")
		assert.Nil(t, result)

		stored, _ := f.orders.FindOrder(ctx, order.ID)
		assert.Equal(t, string(workflow.StatusPendingTechnicalReview), stored.Status, "без строки журнала статус не меняется")

		entries, _ := f.journal.GetByOrderID(ctx, order.ID, true)
		assert.Empty(t, entries)
	})
}
