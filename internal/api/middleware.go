package api

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scribe/internal/logging"
	"scribe/internal/services"
)

const requestIDHeader = "X-Request-ID"

// requestID propagates or assigns a correlation id and stores it on the
// request context for logging.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// deadline bounds every handler with the configured request timeout.
func deadline(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// observe records request metrics and writes one access log line per request.
func observe(logger *slog.Logger, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(started)
		metrics.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
		metrics.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		level := slog.LevelDebug
		if status >= 500 {
			level = slog.LevelWarn
		}
		logging.WithContext(c.Request.Context(), logger).Log(c.Request.Context(), level, "http request",
			logging.Args(
				logging.String("method", c.Request.Method),
				logging.String("route", route),
				logging.Int("status", status),
				logging.Duration("elapsed", elapsed),
			)...,
		)
	}
}
