// Package httpapi is a thin reference HTTP surface over the search engine.
// It contains no ranking logic: just request parsing/clamping, JSON
// serialization, and the ambient middleware stack (security headers,
// structured logging, request IDs, Sentry).
package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/antoinebou12/horaire-search/internal/ctxutil"
	"github.com/antoinebou12/horaire-search/internal/logger"
)

// securityHeadersMiddleware sets a conservative baseline of security
// headers on every response.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}

// requestIDMiddleware assigns a UUID to every request, reusing an
// inbound X-Request-ID header when present, and threads it onto the
// request's context so the logger's ContextHandler picks it up automatically.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// loggingMiddleware logs one structured line per request.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if query != "" {
			fields = append(fields, "query", query)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
			log.ErrorContext(c.Request.Context(), "request completed with errors", fields...)
			return
		}
		log.InfoContext(c.Request.Context(), "request completed", fields...)
	}
}
