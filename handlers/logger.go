package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or creates a new one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	logger, _ := zap.NewProduction()
	return logger
}

// shopIDFrom returns the authenticated shop ID set by the auth middleware.
func shopIDFrom(c *gin.Context) string {
	if v, exists := c.Get("shopID"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
