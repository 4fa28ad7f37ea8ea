package api

import (
	"net/http"

	"piggybank/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration and login, the two unauthenticated routes.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, tok, aerr := h.authService.Register(req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "register successful",
		"token":      tok,
		"user":       fullUserView(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, tok, aerr := h.authService.Login(req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "login successful",
		"token":      tok,
		"user":       fullUserView(user),
	})
}
