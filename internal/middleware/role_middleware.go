package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citizen-portal-backend/internal/core"
	"citizen-portal-backend/internal/models"
)

// RequireRole gates a route group to callers whose profile carries one of
// the allowed role tags. The admin tag always passes. Must run after
// AuthMiddleware.VerifyToken, which sets userID.
func RequireRole(userService core.UserService, allowed ...string) gin.HandlerFunc {
	allowedSet := make(map[string]bool, len(allowed)+1)
	allowedSet[models.RoleAdmin] = true
	for _, role := range allowed {
		allowedSet[role] = true
	}

	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
			return
		}

		user, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Could not resolve caller profile"})
			return
		}
		if !allowedSet[user.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient role for this resource"})
			return
		}

		c.Set("userRole", user.Role)
		c.Next()
	}
}
