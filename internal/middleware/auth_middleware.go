package middleware

import (
	"net/http"
	"strings"

	"taskflow/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the gin context key under which the authenticated user
// id (uuid.UUID) is stored for downstream handlers.
const UserIDKey = "userID"

// JWTAuthMiddleware verifies the Bearer token and puts the caller's
// user id into the request context. It is the only place identity is
// established; handlers read it, never set it.
func JWTAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		userIDStr, err := auth.ParseToken(parts[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
