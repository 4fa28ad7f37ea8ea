package token

import (
	"errors"
	"fmt"
	"time"

	"piggybank/internal/model"
	"piggybank/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// Expired and invalid tokens are distinguished so callers can tell the user
// to log in again rather than showing a generic authentication failure.
var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("invalid token")
)

type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.GlobalConfig.JWT.Secret)
}

func ttl() time.Duration {
	if exp := config.GlobalConfig.JWT.Expiration; exp > 0 {
		return exp
	}
	return 5 * 24 * time.Hour
}

// Generate signs a token for the user. The session ID claim ties the token
// to the user's current session; rotating the stored session ID revokes it.
func Generate(user *model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		SessionID: user.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalid
}
