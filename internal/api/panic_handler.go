package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citizen-portal-backend/internal/core"
	"citizen-portal-backend/internal/models"
)

// PanicHandler serves the women's-advocacy panic-button endpoints.
type PanicHandler struct {
	panicService core.PanicService
}

// NewPanicHandler creates a new PanicHandler.
func NewPanicHandler(ps core.PanicService) *PanicHandler {
	return &PanicHandler{panicService: ps}
}

// GetContact handles GET /advocacy/panic-contact.
func (h *PanicHandler) GetContact(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	contact, err := h.panicService.GetContact(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// SaveContact handles PUT /advocacy/panic-contact, creating or
// overwriting the caller's trusted contact.
func (h *PanicHandler) SaveContact(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.SavePanicContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	contact, err := h.panicService.SaveContact(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Trigger handles POST /advocacy/panic with the device's geolocation fix
// and returns the composed SMS deep link. A missing contact fails with
// 412 before anything is composed.
func (h *PanicHandler) Trigger(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req models.TriggerPanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	alert, err := h.panicService.Trigger(c.Request.Context(), userID, *req.Latitude, *req.Longitude)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}
