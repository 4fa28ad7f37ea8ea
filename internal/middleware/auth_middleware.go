package middleware

import (
	"errors"
	"net/http"
	"strings"

	"piggybank/internal/model"
	"piggybank/internal/repository"
	"piggybank/pkg/token"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"message":    message,
	})
}

// extractBearer pulls the token out of "Authorization: Bearer <token>".
func extractBearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// resolveUser verifies the claims against the stored user: the user must
// still exist and the session ID must match (an account edit rotates it,
// which revokes every earlier token).
func resolveUser(claims *token.Claims) (*model.User, error) {
	userRepo := repository.NewUserRepository()
	user, err := userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.SessionID != claims.SessionID {
		return nil, nil
	}
	return user, nil
}

// AuthMiddleware rejects requests without a valid bearer token. An expired
// token gets a distinct message so clients can prompt for a fresh login.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := extractBearer(c)
		if !ok {
			abortUnauthorized(c, "authorization header is required")
			return
		}

		claims, err := token.Parse(raw)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				abortUnauthorized(c, "token expired, please log in again")
			} else {
				abortUnauthorized(c, "invalid authentication token")
			}
			return
		}

		user, err := resolveUser(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"statusCode": http.StatusInternalServerError,
				"message":    "failed to resolve user",
			})
			return
		}
		if user == nil {
			abortUnauthorized(c, "session is no longer valid, please log in again")
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is present
// and treats everything else as an anonymous request.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := extractBearer(c); ok {
			if claims, err := token.Parse(raw); err == nil {
				if user, err := resolveUser(claims); err == nil && user != nil {
					c.Set(userContextKey, user)
				}
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by the auth middleware,
// or nil on routes with optional authentication.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
