package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/fishledger/internal/presentation/http/dto/response"
	"github.com/sangkips/fishledger/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. The token subject
// becomes the owner of every ledger record touched by the request.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// GetOwnerID retrieves the authenticated owner from gin context
func GetOwnerID(c *gin.Context) uuid.UUID {
	ownerID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := ownerID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
