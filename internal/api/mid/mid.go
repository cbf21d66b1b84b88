// Package mid provides app level middleware support for the management API.
package mid

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jovz/residence-hub/pkg/common/logger"
)

// RequestIDHeader carries the correlation ID between client and server.
const RequestIDHeader = "X-Request-Id"

const requestIDKey = "request_id"

// RequestID attaches a correlation ID to every request, honoring one sent by
// the client and minting one otherwise.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the correlation ID for the request, or an empty
// string outside the middleware chain.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger emits one structured line per request after it completes.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"elapsed", time.Since(start).String(),
			"request_id", GetRequestID(c),
		}
		if len(c.Errors) > 0 {
			log.Error(c.Request.Context(), "request", append(fields, "errors", c.Errors.String())...)
			return
		}
		log.Info(c.Request.Context(), "request", fields...)
	}
}

// APIMetrics defines metrics for API operations.
type APIMetrics interface {
	// ObserveRequestLatency records the latency of API requests.
	ObserveRequestLatency(ctx context.Context, endpoint string, method string, statusCode int, duration time.Duration)

	// IncRequestCount increments the count of requests by endpoint and status.
	IncRequestCount(ctx context.Context, endpoint string, method string, statusCode int)

	// TrackConcurrentRequests tracks the number of concurrent requests.
	TrackConcurrentRequests(ctx context.Context, endpoint string, f func() error) error
}

// Metrics creates middleware that records API metrics per route template.
func Metrics(metrics APIMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		method := c.Request.Method

		_ = metrics.TrackConcurrentRequests(ctx, endpoint, func() error {
			c.Next()
			return nil
		})

		status := c.Writer.Status()
		metrics.IncRequestCount(ctx, endpoint, method, status)
		metrics.ObserveRequestLatency(ctx, endpoint, method, status, time.Since(start))
	}
}
