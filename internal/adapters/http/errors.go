package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-service/internal/adapters/http/dto"
)

// NoRoute answers unknown paths with a JSON 404 instead of gin's plain text.
func NoRoute(c *gin.Context) {
	dto.AbortWithCode(c, dto.ErrorCodeNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
}

// NoMethod answers a known path with an unsupported method.
func NoMethod(c *gin.Context) {
	dto.AbortWithCode(c, dto.ErrorCodeMethodNotAllowed, "method "+c.Request.Method+" not allowed on "+c.Request.URL.Path)
}
