package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/billmind/go-bill-reminder/internal/shared/errors"
)

const userIDKey = "user_id"

// TokenParser validates a bearer token and returns the user id it carries
type TokenParser interface {
	ParseToken(tokenString string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the authenticated user id on the request context
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errors.NewUnauthorizedError("missing bearer token", nil))
			return
		}

		userID, err := parser.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errors.NewUnauthorizedError("invalid token", err))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// MustGetUserID returns the authenticated user id set by AuthMiddleware
func MustGetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
