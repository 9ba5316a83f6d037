package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kamau_backend/internal/handlers"
)

// RegisterRoutes mounts the whole HTTP API under /api/v1.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	adminAuth gin.HandlerFunc,
	userAuth gin.HandlerFunc,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, adminAuth)
		appHandlers.UserHandler.RegisterRoutes(api, userAuth)
		appHandlers.ProfessionalHandler.RegisterRoutes(api, adminAuth)
		appHandlers.AdminHandler.RegisterRoutes(api, adminAuth)
	}
}
