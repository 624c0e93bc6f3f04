package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with method, path, status, and latency.
// Paths in skipPaths (health probes, metrics) are not logged.
func RequestLogger(skipPaths []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slices.Contains(skipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		}
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			attrs = append(attrs, slog.String("user_id", userID))
		}

		switch {
		case status >= http.StatusInternalServerError:
			slog.ErrorContext(c.Request.Context(), "request failed", attrs...)
		case status >= http.StatusBadRequest:
			slog.WarnContext(c.Request.Context(), "request rejected", attrs...)
		default:
			slog.InfoContext(c.Request.Context(), "request handled", attrs...)
		}
	}
}

// PanicRecovery converts handler panics into 500 responses with a logged
// stack-free summary.
func PanicRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "handler panic",
					slog.String("path", c.Request.URL.Path),
					slog.Any("panic", r),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{"code": "internal", "message": "internal server error"},
				})
			}
		}()
		c.Next()
	}
}
