// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/platform/logging"
)

// GenericErrorMessage is returned for failures whose detail must not leak.
const GenericErrorMessage = "An unexpected error occurred. Please try again later."

// ErrorResponse is the error body for all error responses. The top-level
// "error" string is what existing clients read.
type ErrorResponse struct {
	// Error is a human-readable error message.
	Error string `json:"error"`

	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code,omitempty"`

	// Details carries the underlying failure message for unexpected errors.
	Details string `json:"details,omitempty"`

	// Fields contains field-level messages for validation errors.
	Fields map[string]string `json:"fields,omitempty"`

	TraceID string `json:"traceId,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeNotFound indicates the requested resource was not found.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeValidation indicates request validation failed.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeUnavailable indicates the storage backend is unavailable.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodePersistence indicates a storage operation failed.
	ErrorCodePersistence = "PERSISTENCE_ERROR"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeBadRequest indicates the request was malformed.
	ErrorCodeBadRequest = "BAD_REQUEST"

	// ErrorCodeMethodNotAllowed indicates the route exists for other methods.
	ErrorCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: message, Code: code}
}

// NewErrorResponseWithFields creates a validation error response with field messages.
func NewErrorResponseWithFields(code, message string, fields map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: message, Code: code, Fields: fields}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// WithDetails adds the underlying failure message.
func (e *ErrorResponse) WithDetails(details string) *ErrorResponse {
	e.Details = details
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrorCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 with the generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	switch {
	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())

	case domain.IsPersistence(err):
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodePersistence, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Fields = map[string]string{validationErr.Field: validationErr.Message}
		}

		return http.StatusBadRequest, resp

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	default:
		return http.StatusInternalServerError,
			NewErrorResponse(ErrorCodeInternal, GenericErrorMessage).WithDetails(err.Error())
	}
}

// HandleError writes the mapped error response and logs server-side failures.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			slog.Int("status", status),
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// AbortWithCode aborts the request chain with a specific error code.
func AbortWithCode(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message).WithTraceID(GetTraceID(c))
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), resp)
}

// GetTraceID returns the trace identifier for the request: an explicit
// "trace_id" context value, then the active span, then X-Request-ID.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}

		return ""
	}

	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.Request.Header.Get("X-Request-ID")
}
