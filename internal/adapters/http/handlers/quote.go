package handlers

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-service/internal/app"
)

// QuoteHandler handles the quote endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// AddQuote handles POST /api/quotes.
// The client address comes from X-Forwarded-For when present.
//
// @Summary Submit a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body dto.AddQuoteRequest true "Quote text"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/quotes [post]
func (h *QuoteHandler) AddQuote(c *gin.Context) {
	var req dto.AddQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		if errors.Is(err, dto.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithFields(
				dto.ErrorCodeValidation,
				"request validation failed",
				dto.ValidationErrors(err),
			).WithTraceID(dto.GetTraceID(c)))

			return
		}

		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"request body must be a JSON object with a \"quote\" field",
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	quote, err := h.service.AddQuote(c.Request.Context(), req.Quote, SourceIP(c.Request))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// ListQuotes handles GET /api/quotes.
//
// @Summary List all quotes
// @Tags quotes
// @Produce json
// @Success 200 {array} dto.QuoteResponse
// @Router /api/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.service.ListQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteListResponse(quotes))
}

// GetLatestQuote handles GET /api/quotes/latest.
// Responds with JSON null when no quote exists.
//
// @Summary Get the most recent quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/quotes/latest [get]
func (h *QuoteHandler) GetLatestQuote(c *gin.Context) {
	quote, err := h.service.GetLatestQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// DeleteQuote handles DELETE /api/quotes/:id.
// Deleting an unknown id succeeds.
//
// @Summary Delete a quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	id, err := h.service.ParseQuoteID(c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.service.DeleteQuote(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}

// GetDBStatus handles GET /api/dbstatus.
//
// @Summary Report the configured storage backend
// @Tags system
// @Produce json
// @Success 200 {object} dto.DBStatusResponse
// @Router /api/dbstatus [get]
func (h *QuoteHandler) GetDBStatus(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewDBStatusResponse(h.service.BackendStatus(c.Request.Context())))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.POST("", h.AddQuote)
	quotes.GET("", h.ListQuotes)
	quotes.GET("/latest", h.GetLatestQuote)
	quotes.DELETE("/:id", h.DeleteQuote)

	rg.GET("/dbstatus", h.GetDBStatus)
}

// SourceIP returns the first X-Forwarded-For entry, else the peer host.
func SourceIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
