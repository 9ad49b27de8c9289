package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"parts-order-system/internal/controllers"
	"parts-order-system/internal/repositories"
	"parts-order-system/internal/services"
	"parts-order-system/pkg/config"
	"parts-order-system/pkg/middleware"
	"parts-order-system/pkg/service"
)

type Loggers struct {
	Main         *zap.Logger
	Auth         *zap.Logger
	Order        *zap.Logger
	Review       *zap.Logger
	OrderHistory *zap.Logger
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn)
	orderRepo := repositories.NewOrderRepository(dbConn, loggers.Order)
	itemRepo := repositories.NewOrderItemRepository(dbConn)
	reviewerRepo := repositories.NewOrderReviewerRepository(dbConn)
	workflowRepo := repositories.NewWorkflowRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- СЕРВИСЫ ---
	actorDirectory := services.NewActorDirectoryService(userRepo, cacheRepo, cfg.Review.ActorCacheTTL, loggers.Main)
	authService := services.NewAuthService(userRepo, jwtSvc, loggers.Auth)
	orderService := services.NewOrderService(
		orderRepo, itemRepo, reviewerRepo, workflowRepo, userRepo,
		actorDirectory, txManager, cfg.Review, loggers.Order,
	)
	reviewService := services.NewReviewService(orderRepo, reviewerRepo, workflowRepo, txManager, loggers.Review)
	historyService := services.NewOrderHistoryService(orderRepo, workflowRepo, actorDirectory, loggers.OrderHistory)

	// --- КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, loggers.Auth)
	orderController := controllers.NewOrderController(orderService, loggers.Order)
	reviewController := controllers.NewReviewController(reviewService, actorDirectory, loggers.Review)
	historyController := controllers.NewOrderHistoryController(historyService, loggers.OrderHistory)
	reportController := controllers.NewReportController(orderService, loggers.Main)

	// --- РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authController)
	runOrderRouter(secureGroup, orderController, reviewController, historyController, authMW)
	runReportRouter(secureGroup, reportController, authMW)

	loggers.Main.Info("InitRouter: Маршруты созданы")
}
