package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"farmhub-backend/internal/shared/metrics"
	"farmhub-backend/internal/shared/telemetry"
)

// LogFieldsKey is the context key handlers use to attach extra request log fields.
const LogFieldsKey = "logFields"

// AddLogField attaches a key/value to the request.complete log line.
func AddLogField(c *gin.Context, key string, value any) {
	fields, _ := c.Get(LogFieldsKey)
	m, ok := fields.(map[string]any)
	if !ok {
		m = make(map[string]any)
		c.Set(LogFieldsKey, m)
	}
	m[key] = value
}

// Logging emits a structured log per request and records request metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		metrics.ObserveHTTP(c.Request.Method, c.FullPath(), status, latency.Seconds())

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if extra, ok := c.Get(LogFieldsKey); ok {
			if m, ok := extra.(map[string]any); ok {
				for k, v := range m {
					fields[k] = v
				}
			}
		}
		telemetry.Info("request.complete", fields)
	}
}
