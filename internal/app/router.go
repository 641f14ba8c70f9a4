package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"worldmarket/internal/handler"
	"worldmarket/internal/middleware"
	"worldmarket/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthService         *service.AuthService
	AuthHandler         *handler.AuthHandler
	PaymentHandler      *handler.PaymentHandler
	ProductHandler      *handler.ProductHandler
	ConversationHandler *handler.ConversationHandler
	ReportHandler       *handler.ReportHandler
	FavoriteHandler     *handler.FavoriteHandler
	ConfigHandler       *handler.ConfigHandler
	RedisClient         *redis.Client
	NewRelicApp         *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Session resolution has to run before idempotency so cached replies
	// are scoped per user.
	router.Use(middleware.SessionMiddleware(deps.AuthService))
	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Paths the World App mini-app calls directly.
	api := router.Group("/api")
	{
		api.GET("/config/listing-fee", deps.ConfigHandler.GetListingFee)
		api.GET("/config/support-contact", deps.ConfigHandler.GetSupportContact)

		authed := api.Group("", middleware.RequireAuth())
		{
			authed.POST("/initiate-payment", deps.PaymentHandler.InitiatePayment)
			authed.POST("/verify-payment", deps.PaymentHandler.VerifyPayment)
		}
	}

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/verify-world-id", deps.AuthHandler.VerifyWorldID)
			auth.POST("/become-seller", middleware.RequireAuth(), deps.AuthHandler.BecomeSeller)
			auth.GET("/me", middleware.RequireAuth(), deps.AuthHandler.Me)
		}

		// Product routes.
		products := v1.Group("/products")
		{
			products.GET("", deps.ProductHandler.Browse)
			products.GET("/mine", middleware.RequireAuth(), deps.ProductHandler.MyListings)
			products.GET("/:id", deps.ProductHandler.Get)
			products.POST("", middleware.RequireAuth(), deps.ProductHandler.Create)
			products.POST("/:id/status", middleware.RequireAuth(), deps.ProductHandler.UpdateStatus)
		}

		// Payment routes.
		payments := v1.Group("/payments", middleware.RequireAuth())
		{
			payments.GET("/:id", deps.PaymentHandler.GetPayment)
		}

		// Conversation routes.
		conversations := v1.Group("/conversations", middleware.RequireAuth())
		{
			conversations.POST("", deps.ConversationHandler.Start)
			conversations.GET("", deps.ConversationHandler.Inbox)
			conversations.GET("/:id/messages", deps.ConversationHandler.Messages)
			conversations.POST("/:id/messages", deps.ConversationHandler.Send)
		}

		// Favorite routes.
		favorites := v1.Group("/favorites", middleware.RequireAuth())
		{
			favorites.POST("", deps.FavoriteHandler.Add)
			favorites.GET("", deps.FavoriteHandler.List)
			favorites.DELETE("/:productId", deps.FavoriteHandler.Remove)
		}

		// Report routes.
		reports := v1.Group("/reports", middleware.RequireAuth())
		{
			reports.POST("", deps.ReportHandler.Create)
		}

		// Admin routes.
		admin := v1.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())
		{
			admin.GET("/products", deps.ProductHandler.AdminList)
			admin.GET("/reports", deps.ReportHandler.AdminList)
			admin.GET("/reports/:id", deps.ReportHandler.AdminGet)
			admin.POST("/reports/:id/moderate", deps.ReportHandler.Moderate)
			admin.PUT("/config", deps.ConfigHandler.Set)
		}
	}

	return router
}
