package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"parts-order-system/internal/services"
	"parts-order-system/pkg/utils"
)

type OrderHistoryController struct {
	historyService services.OrderHistoryServiceInterface
	logger         *zap.Logger
}

func NewOrderHistoryController(historyService services.OrderHistoryServiceInterface, logger *zap.Logger) *OrderHistoryController {
	return &OrderHistoryController{historyService: historyService, logger: logger}
}

// GetHistory отдаёт журнал заявки. По умолчанию свежие записи первыми,
// ?order=asc — в порядке возникновения.
func (c *OrderHistoryController) GetHistory(ctx echo.Context) error {
	orderID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ascending := strings.EqualFold(ctx.QueryParam("order"), "asc")

	history, err := c.historyService.GetHistory(ctx.Request().Context(), orderID, ascending)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, history, "Журнал заявки получен", http.StatusOK)
}
