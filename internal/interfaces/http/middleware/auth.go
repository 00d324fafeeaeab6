package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rml/bookkeeper/internal/interfaces/http/dto"
)

// UserIDKey is the context key holding the authenticated account id
const UserIDKey = "user_id"

// TokenVerifier checks an access token and returns the account id it belongs to
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Auth rejects requests without a valid bearer token
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Missing bearer token"))
			return
		}
		userID, err := verifier.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Invalid or expired token"))
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated account id set by Auth
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
