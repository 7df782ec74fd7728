package middleware

import (
	"net/http"

	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerGate returns a middleware for the swagger routes. When the docs are
// disabled the routes answer 404 so the deployment does not advertise them.
func SwaggerGate(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatusJSON(http.StatusNotFound,
				dto.NewErrorResponse(dto.CodeNotFound, "API documentation is not available"))
			return
		}
		c.Next()
	}
}
