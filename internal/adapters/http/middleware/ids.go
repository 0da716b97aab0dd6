// Package middleware provides HTTP middleware components for the Gin server.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request identifier.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID carries an identifier shared by every request of
	// one client transaction.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin.Context key of the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin.Context key of the correlation ID.
	ContextKeyCorrelationID = "correlation_id"

	// maxIDLength bounds client-supplied identifiers.
	maxIDLength = 128
)

type idConfig struct {
	header   string
	key      string
	enrich   func(ctx context.Context, id string) context.Context
	generate func() string
}

// RequestID returns middleware that propagates or generates X-Request-ID and
// attaches it to the request logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware(idConfig{
		header:   HeaderRequestID,
		key:      ContextKeyRequestID,
		enrich:   logging.WithRequestID,
		generate: newID,
	})
}

// CorrelationID returns middleware that propagates or generates X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(idConfig{
		header:   HeaderCorrelationID,
		key:      ContextKeyCorrelationID,
		enrich:   logging.WithCorrelationID,
		generate: newID,
	})
}

// GetRequestID returns the request ID, or "" when the middleware did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID, or "" when the middleware did not run.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

func idMiddleware(cfg idConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.header)
		if !validID(id) {
			id = cfg.generate()
		}

		c.Set(cfg.key, id)
		c.Header(cfg.header, id)
		c.Request = c.Request.WithContext(cfg.enrich(c.Request.Context(), id))

		c.Next()
	}
}

func newID() string {
	return uuid.New().String()
}

// validID accepts non-empty printable ASCII identifiers of bounded length.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}
