package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citizen-portal-backend/internal/core"
)

// AuthHandler bridges client-side Firebase sign-up to the backend profile.
type AuthHandler struct {
	userService core.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us core.UserService) *AuthHandler {
	return &AuthHandler{userService: us}
}

// InitializeUserProfile handles POST /users/initialize. Called after
// client-side Firebase registration or login to ensure the profile
// document exists; new profiles start with the citizen role.
func (h *AuthHandler) InitializeUserProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, created, err := h.userService.GetOrCreate(
		c.Request.Context(),
		userID,
		c.GetString("userEmail"),
		c.GetString("userDisplayName"),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}
