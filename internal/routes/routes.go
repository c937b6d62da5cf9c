package routes

import (
	"net/http"

	"recipehub_backend/internal/handlers"
	"recipehub_backend/internal/logger"
	"recipehub_backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует API v1, /health и /metrics.
// requireAuth навешивается на все защищенные маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	requireAuth gin.HandlerFunc,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := ginRouter.Group("/api/v1")
	protected := api.Group("", requireAuth)
	for _, h := range appHandlers.All() {
		h.RegisterRoutes(api, protected)
	}

	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
