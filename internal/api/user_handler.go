package api

import (
	"net/http"

	"piggybank/internal/middleware"
	"piggybank/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// GetUser runs behind optional authentication: the full profile is returned
// only when the token belongs to the requested user, everyone else gets the
// redacted view.
func (h *UserHandler) GetUser(c *gin.Context) {
	username := c.Param("username")

	user, aerr := h.authService.GetProfile(username)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	requester := middleware.CurrentUser(c)
	if requester != nil && requester.ID == user.ID {
		c.JSON(http.StatusOK, fullUserView(user))
		return
	}
	c.JSON(http.StatusOK, redactedUserView(user))
}

// UpdateUser edits the caller's own account and returns a fresh token;
// tokens issued before the edit stop working.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	requester := middleware.CurrentUser(c)
	username := c.Param("username")

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, tok, aerr := h.authService.Update(requester, username, req)
	if aerr != nil {
		respondError(c, aerr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    "user updated",
		"token":      tok,
		"user":       fullUserView(user),
	})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	requester := middleware.CurrentUser(c)
	username := c.Param("username")

	if aerr := h.authService.Delete(requester, username); aerr != nil {
		respondError(c, aerr)
		return
	}
	respondMessage(c, "user deleted")
}
