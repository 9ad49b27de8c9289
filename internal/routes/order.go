package routes

import (
	"github.com/labstack/echo/v4"

	"parts-order-system/internal/controllers"
	"parts-order-system/pkg/middleware"
)

func runOrderRouter(
	secureGroup *echo.Group,
	orderController *controllers.OrderController,
	reviewController *controllers.ReviewController,
	historyController *controllers.OrderHistoryController,
	authMW *middleware.AuthMiddleware,
) {
	orders := secureGroup.Group("/orders")

	orders.GET("", orderController.GetOrders)
	orders.POST("", orderController.CreateOrder)
	orders.GET("/:id", orderController.FindOrder)
	orders.PUT("/:id", orderController.UpdateOrder)

	orders.POST("/:id/items", orderController.AddItem)
	orders.PUT("/:id/items/:itemId", orderController.UpdateItem)
	orders.DELETE("/:id/items/:itemId", orderController.DeleteItem)

	orders.POST("/:id/submit", orderController.SubmitForReview)
	orders.POST("/:id/review", reviewController.RecordVerdict)
	orders.POST("/:id/cancel", orderController.CancelOrder)
	orders.POST("/:id/notes", orderController.CreateNote)
	orders.GET("/:id/history", historyController.GetHistory)

	// Прямая смена статуса в обход кворума — только администраторам.
	orders.POST("/:id/transition", orderController.ForceTransition, authMW.RequireAdmin)

	secureGroup.GET("/reviewers", reviewController.GetReviewers)
}
