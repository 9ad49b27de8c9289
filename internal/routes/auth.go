package routes

import (
	"github.com/labstack/echo/v4"

	"parts-order-system/internal/controllers"
)

func runAuthRouter(api *echo.Group, authController *controllers.AuthController) {
	auth := api.Group("/auth")
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.Refresh)
}
