package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"legalassist-backend/internal/shared/metrics"
	"legalassist-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request and counts it.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		userID, _ := c.Get(userIDKey)
		documentID, _ := c.Get("documentId")
		analysisType, _ := c.Get("analysisType")

		metrics.ObserveRequest(c.Request.Method, c.FullPath(), status)
		telemetry.Info("request.complete", map[string]any{
			"request_id":    RequestIDFromContext(c),
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        status,
			"duration_ms":   float64(latency.Microseconds()) / 1000.0,
			"user_id":       userID,
			"document_id":   documentID,
			"analysis_type": analysisType,
			"client_ip":     c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
		})
	}
}
