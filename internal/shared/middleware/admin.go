package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/shared/response"
)

const RoleAdmin = "admin"

// AdminMiddleware requires the admin role; register after AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != RoleAdmin {
			response.ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
