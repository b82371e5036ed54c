package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwantia/taskfilter/pkg/log"
)

// requestLogger logs one line per request on logger.
func requestLogger(logger log.LoggerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := "%s %s -> %d (%s)"
		args := []any{c.Request.Method, c.Request.URL.RequestURI(), status, time.Since(start)}
		switch {
		case status >= 500:
			logger.Error(line, args...)
		case status >= 400:
			logger.Warn(line, args...)
		default:
			logger.Debug(line, args...)
		}
	}
}

// recovery turns panics into 500 responses and logs them.
func recovery(logger log.LoggerService) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		logger.Error("Panic while serving %s: %v", c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}
