package routes

import (
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/api/handler"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	transactionHandler *handler.TransactionHandler,
	webhookHandler *handler.WebhookHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	userHandler *handler.UserHandler,
	healthHandler *handler.HealthHandler,
) {
	router.GET("/health", healthHandler.Check)

	transactionRoutes := router.Group("/transactions")
	{
		transactionRoutes.POST("/create", transactionHandler.Create)
		transactionRoutes.GET("/:gatewayId", transactionHandler.Get)
		transactionRoutes.GET("/:gatewayId/status", transactionHandler.GetStatus)
		transactionRoutes.POST("/:gatewayId/refund", transactionHandler.Refund)
	}

	router.POST("/webhook/:provider", webhookHandler.Receive)

	router.GET("/subscriptions", subscriptionHandler.GetActive)

	userRoutes := router.Group("/users")
	{
		userRoutes.POST("", userHandler.Create)
		userRoutes.GET("/:id", userHandler.Get)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
