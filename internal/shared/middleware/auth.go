package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/shared/response"
	"marketplace-backend/pkg/jwt"
	"marketplace-backend/pkg/logger"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity in the gin context
func AuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH_ERROR", "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH_ERROR", "invalid authorization header format")
			c.Abort()
			return
		}

		// 2. Verify
		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			logger.Debug("token rejected", map[string]interface{}{"error": err.Error()})
			response.ErrorResponse(c, http.StatusUnauthorized, "AUTH_ERROR", "invalid token")
			c.Abort()
			return
		}

		// 3. Expose identity to handlers
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// UserID returns the authenticated user id, if any
func UserID(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}
