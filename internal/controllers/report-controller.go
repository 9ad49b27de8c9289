package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"parts-order-system/internal/dto"
	"parts-order-system/internal/services"
	"parts-order-system/pkg/utils"
)

type ReportController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewReportController(orderService services.OrderServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{orderService: orderService, logger: logger}
}

// GetOrdersReport выгружает реестр заявок в XLSX. Фильтры те же,
// что и у списка заявок; пагинация при выгрузке не применяется.
func (c *ReportController) GetOrdersReport(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	filter.WithPagination = false

	orders, _, err := c.orderService.GetOrders(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondWithXLSX(ctx, orders)
}

var reportHeaders = []string{
	"Номер заявки", "Наименование", "Оборудование", "Модель", "Размещение",
	"Срочность", "Статус", "Сумма", "Валюта", "Автор", "Дата создания", "Дата поставки",
}

func orderReportRow(order *dto.OrderDTO) []interface{} {
	return []interface{}{
		order.OrderNumber, order.Title, order.EquipmentName, order.EquipmentModel,
		order.EquipmentLocation, order.UrgencyLevel, order.Status,
		order.TotalEstimatedCost, order.Currency, order.Creator.Fio,
		order.CreatedAt, order.RequestedDeliveryDate,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, orders []dto.OrderDTO) error {
	f := excelize.NewFile()
	sheet := "Реестр заявок"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i := range orders {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := orderReportRow(&orders[i])
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 16)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "E", 25)
	f.SetColWidth(sheet, "J", "L", 22)

	fileName := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
