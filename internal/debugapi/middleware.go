package debugapi

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDHeader is the response header carrying each request's
// correlation id.
const requestIDHeader = "X-Request-ID"

// loggingMiddleware attaches a correlation id to every request and logs
// its path, status, and duration once the handler returns. Log level is
// Info for 2xx/3xx responses and Warn otherwise, mirroring how the
// core codec's callers log success versus failure distinctly.
func loggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := uuid.NewString()
		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Set(requestIDHeader, reqID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		attrs := []slog.Attr{
			slog.String("request_id", reqID),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", duration),
		}

		if c.Writer.Status() >= 400 {
			logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "debugapi request", attrs...)
		} else {
			logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "debugapi request", attrs...)
		}
	}
}
