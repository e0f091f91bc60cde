package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citizen-portal-backend/internal/core"
)

// CouncilHandler serves the council-member roster, consumed by the public
// home page slider and the appointment-request form's option list.
type CouncilHandler struct {
	councilService core.CouncilService
}

// NewCouncilHandler creates a new CouncilHandler.
func NewCouncilHandler(cs core.CouncilService) *CouncilHandler {
	return &CouncilHandler{councilService: cs}
}

// ListMembers handles GET /council/members. Public, no auth.
func (h *CouncilHandler) ListMembers(c *gin.Context) {
	members, err := h.councilService.ListMembers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
