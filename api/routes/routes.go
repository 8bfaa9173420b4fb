package routes

import (
	"github.com/giftwheel/giveaway-backend/internal/config"
	"github.com/giftwheel/giveaway-backend/internal/handlers"
	"github.com/giftwheel/giveaway-backend/internal/middleware"
	"github.com/giftwheel/giveaway-backend/internal/models"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies collects the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	GiveawayHandler *handlers.GiveawayHandler
	PurchaseHandler *handlers.PurchaseHandler
	CatalogHandler  *handlers.CatalogHandler
	BackupHandler   *handlers.BackupHandler
	SettingsHandler *handlers.SystemSettingsHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes: any authenticated operator
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		catalog := protected.Group("/catalog")
		{
			catalog.GET("/search", deps.CatalogHandler.Search)
			catalog.GET("/items/:id/price", deps.CatalogHandler.GetPrice)
		}

		purchases := protected.Group("/purchases")
		{
			purchases.POST("", deps.PurchaseHandler.RecordPurchase)
			purchases.GET("/member/:member", deps.PurchaseHandler.GetPurchasesByMember)
		}

		giveaways := protected.Group("/giveaways")
		{
			giveaways.GET("", deps.GiveawayHandler.GetGiveaways)
			giveaways.GET("/:id", deps.GiveawayHandler.GetGiveawayByID)
			giveaways.GET("/:id/result", deps.GiveawayHandler.GetGiveawayResult)
			giveaways.GET("/:id/entries", deps.GiveawayHandler.GetEntryPool)
		}
	}

	// Admin routes: mutating operations require the admin role
	admin := router.Group("/api/v1")
	admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/auth/register", deps.AuthHandler.Register)
		admin.POST("/giveaways", deps.GiveawayHandler.CreateGiveaway)
		admin.POST("/giveaways/:id/spin", deps.GiveawayHandler.SpinGiveaway)
		admin.POST("/backups/run", deps.BackupHandler.RunBackup)

		settings := admin.Group("/settings")
		{
			settings.GET("", deps.SettingsHandler.GetSettings)
			settings.PUT("", deps.SettingsHandler.UpdateSettings)
			settings.PUT("/chat-gateway", deps.SettingsHandler.UpdateChatGateway)
		}
	}

	return router
}
