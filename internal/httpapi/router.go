package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ragchat/internal/metrics"
)

// NewRouter wires the API routes, health check and metrics endpoint.
func NewRouter(c *Controller, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), cors())

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group("/api")
	{
		api.POST("/ask", c.Ask)
		api.POST("/chat", c.Chat)
		api.GET("/chat/history", c.History)
	}
	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
