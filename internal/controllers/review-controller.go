package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/services"
	"parts-order-system/pkg/utils"
)

type ReviewController struct {
	reviewService services.ReviewServiceInterface
	actors        services.ActorDirectoryInterface
	logger        *zap.Logger
}

func NewReviewController(
	reviewService services.ReviewServiceInterface,
	actors services.ActorDirectoryInterface,
	logger *zap.Logger,
) *ReviewController {
	return &ReviewController{reviewService: reviewService, actors: actors, logger: logger}
}

// RecordVerdict записывает вердикт текущего пользователя по заявке.
// Кто может голосовать, определяет набор назначений, а не роль.
func (c *ReviewController) RecordVerdict(ctx echo.Context) error {
	reviewerID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RecordVerdictDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.reviewService.RecordVerdict(ctx.Request().Context(), reviewerID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Вердикт записан", http.StatusOK)
}

// GetReviewers — справочник доступных проверяющих для формы отправки.
func (c *ReviewController) GetReviewers(ctx echo.Context) error {
	reviewers, err := c.actors.GetReviewers(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, reviewers, "Список проверяющих получен", http.StatusOK)
}
