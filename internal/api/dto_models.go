package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"citizen-portal-backend/internal/core"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is the standard payload for mutations with no body.
type MessageResponse struct {
	Message string `json:"message"`
}

// respondServiceError maps core sentinel errors to HTTP statuses. The 412
// preconditions carry the sentinel text verbatim; clients use it to
// redirect the citizen to the page that remedies the precondition.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrSubmissionNotFound),
		errors.Is(err, core.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrForbiddenAccess):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: core.ErrForbiddenAccess.Error()})
	case errors.Is(err, core.ErrProfileIncomplete):
		c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: core.ErrProfileIncomplete.Error()})
	case errors.Is(err, core.ErrPanicContactNotConfigured):
		c.JSON(http.StatusPreconditionFailed, ErrorResponse{Error: core.ErrPanicContactNotConfigured.Error()})
	case errors.Is(err, core.ErrAnonymousNotAllowed),
		errors.Is(err, core.ErrMissingRequiredField),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("Internal Server Error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

// requireUserID fetches the authenticated UID set by the auth middleware.
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User ID not found in context"})
		return "", false
	}
	return userID, true
}
