package routes

import (
	"net/http"
	"time"

	shopRepo "tallerchat/database/repository/shop"
	"tallerchat/handlers"
	"tallerchat/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers and the repositories the
// middleware needs.
type HandlerBundle struct {
	ShopRepo shopRepo.ShopRepository

	Auth     *handlers.AuthHandler
	Chat     *handlers.ChatHandler
	Services *handlers.ServicesHandler
}

// RegisterShopRoutes registers account endpoints.
func RegisterShopRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/shops")
	{
		api.POST("/register", hb.Auth.RegisterShopHandler)
		api.POST("/login", hb.Auth.LoginShopHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthShopMiddleware(hb.ShopRepo))
		api.POST("/logout", hb.Auth.LogoutShopHandler)
	}
}

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.JWTAuthShopMiddleware(hb.ShopRepo))
		api.GET("", hb.Chat.IndexHandler)
		api.POST("/message", hb.Chat.MessageHandler)
		api.GET("/search_clients", hb.Chat.SearchClientsHandler)
		api.GET("/search_services", hb.Chat.SearchServicesHandler)
		api.POST("/quick_register", hb.Chat.QuickRegisterHandler)
	}
}

// RegisterCatalogRoutes registers catalog management endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.Use(middleware.JWTAuthShopMiddleware(hb.ShopRepo))
		api.GET("", hb.Services.ListServicesHandler)
		api.POST("", hb.Services.CreateServiceHandler)
		api.DELETE("/:id", hb.Services.DeactivateServiceHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm TallerChat"})
	})
}

// RegisterRoutes wires CORS and every route group onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterShopRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterHealthRoute(r)
}
