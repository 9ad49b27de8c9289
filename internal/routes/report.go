package routes

import (
	"github.com/labstack/echo/v4"

	"parts-order-system/internal/controllers"
	"parts-order-system/pkg/middleware"
)

func runReportRouter(secureGroup *echo.Group, reportController *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	reports := secureGroup.Group("/reports", authMW.RequireAdmin)
	reports.GET("/orders", reportController.GetOrdersReport)
}
