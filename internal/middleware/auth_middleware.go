package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rahulk/vaxportal/internal/pkg/apperrors"
	"github.com/rahulk/vaxportal/internal/pkg/auth"
)

// Context keys set by the authentication middleware
const (
	ContextUserIDKey    = "userID"
	ContextUserEmailKey = "userEmail"
)

// JWTAuth validates the Authorization header and stores the authenticated
// user's identity on the request context
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, apperrors.ErrTokenNotFound)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				HandleAPIError(c, apperrors.ErrTokenExpired)
			} else {
				HandleAPIError(c, apperrors.ErrTokenInvalid)
			}
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserEmailKey, claims.Email)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the context
func GetUserID(c *gin.Context) (int64, error) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, apperrors.ErrTokenNotFound
	}

	userID, ok := value.(int64)
	if !ok {
		return 0, apperrors.ErrTokenInvalid
	}

	return userID, nil
}
