package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"proxi_back_end/internal/handlers"
	"proxi_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// L'extension Chrome appelle depuis des origines chrome-extension://,
	// le front consommateur et le dashboard depuis leurs propres domaines.
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// --- Public : recherche et consultation ---
	public := api.Group("")
	public.Use(middleware.APIRateLimit(middleware.SearchMaxRequests, middleware.SearchCooldown))
	{
		public.POST("/search", handlers.SearchProducts)
		public.GET("/categories", handlers.GetCategories)
		public.GET("/suggest", handlers.GetSuggestions)
		public.GET("/stores/near", handlers.GetStoresNear)
		public.GET("/stores/:id", handlers.GetStoreByID)
		public.GET("/stores/:id/inventory", handlers.GetStoreInventory)
		public.GET("/link/qr", handlers.GetLinkQR)
	}

	// --- Auth ---
	auth := api.Group("/auth")
	auth.Use(middleware.APIRateLimit(middleware.AuthMaxAttempts, middleware.AuthCooldown))
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// --- Utilisateur connecté ---
	user := api.Group("")
	user.Use(middleware.AuthRequired())
	{
		user.POST("/orders", handlers.CreateOrder)
		user.GET("/orders", handlers.GetMyOrders)
		user.GET("/orders/:id", handlers.GetOrderByID)
		user.POST("/orders/:id/cancel", handlers.CancelOrder)
		user.GET("/notifications", handlers.GetNotifications)
		user.POST("/notifications/:id/read", handlers.MarkNotificationRead)
	}

	// --- Dashboard commerçant ---
	merchant := api.Group("")
	merchant.Use(middleware.AuthRequired(), middleware.RequireMerchant())
	{
		merchant.POST("/inventory", handlers.CreateInventoryRecord)
		merchant.PUT("/inventory/:id", handlers.UpdateInventoryRecord)
		merchant.DELETE("/inventory/:id", handlers.DeleteInventoryRecord)
		merchant.GET("/subscription", handlers.GetSubscription)
		merchant.POST("/subscription/upgrade", handlers.UpgradeSubscription)
	}

	// Webhook Stripe (signé, pas de JWT).
	api.POST("/subscription/webhook", handlers.StripeWebhook)
}
