package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citizen-portal-backend/internal/core"
)

// NotificationHandler serves the citizen's notification feed.
type NotificationHandler struct {
	notificationService core.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns core.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// List handles GET /notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	items, err := h.notificationService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// MarkRead handles PUT /notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "notification marked as read"})
}
