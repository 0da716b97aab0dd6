package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// Recovery returns the catch-all middleware. A panic anywhere later in the
// chain is logged with its stack and answered with a 500 carrying the generic
// message and the panic value as details.
//
// When the request context carries no logger yet, logger is stored there so
// later middleware (request and correlation ids) enrich it.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := logging.Lookup(c.Request.Context()); !ok && logger != nil {
			c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		}

		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctxLogger := logging.FromContextOr(c.Request.Context(), logger)

			traceID := dto.GetTraceID(c)

			ctxLogger.Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			resp := dto.NewErrorResponse(dto.ErrorCodeInternal, dto.GenericErrorMessage).
				WithDetails(fmt.Sprint(r)).
				WithTraceID(traceID)

			c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		}()

		c.Next()
	}
}
