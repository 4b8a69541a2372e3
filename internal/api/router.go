package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/auth"
	"github.com/workshop-admin-api/internal/catalog"
	"github.com/workshop-admin-api/internal/config"
	"github.com/workshop-admin-api/internal/models"
	"github.com/workshop-admin-api/internal/service"
	"github.com/workshop-admin-api/pkg/logger"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(catalogTokenMiddleware(cfg.Shopify.AccessToken))
	router.Use(auth.NewMiddleware(cfg.Auth, log).Handler())

	// Handlers
	workshopHandler := NewWorkshopHandler(services, log)
	resourceHandler := NewResourceHandler(services, log)
	updateHandler := NewUpdateHandler(services, log)
	syncHandler := NewSyncHandler(services, cfg.Shopify.CollectionID, log)
	uploadHandler := NewUploadHandler(services, log)
	exportHandler := NewExportHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	{
		workshops := v1.Group("/workshops")
		{
			workshops.GET("", workshopHandler.List)
			workshops.POST("", workshopHandler.Create)
			workshops.GET("/:id", workshopHandler.Get)
			workshops.PUT("/:id", workshopHandler.Update)
			workshops.DELETE("/:id", workshopHandler.Delete)

			workshops.GET("/:id/resources", resourceHandler.List)
			workshops.POST("/:id/resources", resourceHandler.Create)
			workshops.PUT("/:id/resources/:resource_id", resourceHandler.Update)
			workshops.DELETE("/:id/resources/:resource_id", resourceHandler.Delete)

			workshops.GET("/:id/updates", updateHandler.List)
			workshops.POST("/:id/updates", updateHandler.Create)
			workshops.PUT("/:id/updates/:update_id", updateHandler.Update)
			workshops.DELETE("/:id/updates/:update_id", updateHandler.Delete)
		}

		v1.POST(syncRoute, syncHandler.SyncShopify)
		v1.POST("/uploads/:bucket", uploadHandler.Upload)
		v1.GET("/exports/workshops", exportHandler.StreamWorkshops)
	}

	return router
}

const syncRoute = "/sync/shopify"

// catalogTokenMiddleware fails the sync route before the auth gate when no
// catalog token is configured, so a misconfigured deployment reports 500
// rather than 401.
func catalogTokenMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token != "" || c.Request.Method != http.MethodPost || c.FullPath() != "/v1"+syncRoute {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   catalog.ErrMissingToken.Error(),
			"created": 0,
			"updated": 0,
			"errors":  []models.SyncError{},
		})
	}
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   logger.ServiceName,
	})
}

// metricsHandler returns table row counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		workshopsCount, _ := services.Export.GetCount(ctx, "workshops")
		resourcesCount, _ := services.Export.GetCount(ctx, "resources")
		updatesCount, _ := services.Export.GetCount(ctx, "updates")

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"workshops": workshopsCount,
				"resources": resourcesCount,
				"updates":   updatesCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware answers preflights and opens every route to browser callers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}
