package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"citizen-portal-backend/internal/core"
	"citizen-portal-backend/internal/models"
)

// AdminHandler serves the per-domain triage dashboards: unfiltered
// listing, live stream, status histogram and the three triage mutations.
type AdminHandler struct {
	submissionService core.SubmissionService
	triageService     core.TriageService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(ss core.SubmissionService, ts core.TriageService) *AdminHandler {
	return &AdminHandler{submissionService: ss, triageService: ts}
}

// ListAll handles GET /admin/{domain}/submissions.
func (h *AdminHandler) ListAll(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		subs, err := h.submissionService.ListAll(c.Request.Context(), domain)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, subs)
	}
}

// Get handles GET /admin/{domain}/submissions/:id. Staff see any record,
// including anonymous ones.
func (h *AdminHandler) Get(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		sub, msgs, err := h.submissionService.Get(c.Request.Context(), domain, c.Param("id"), userID, true)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"submission": sub, "messages": msgs})
	}
}

// Stream handles GET /admin/{domain}/submissions/stream.
func (h *AdminHandler) Stream(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		streamSubmissions(c, h.submissionService, domain, "")
	}
}

// Histogram handles GET /admin/{domain}/histogram. The fixed ordered
// category list always comes back in full, zero counts included.
func (h *AdminHandler) Histogram(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		buckets, err := h.submissionService.Histogram(c.Request.Context(), domain)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, buckets)
	}
}

// ChangeStatus handles PUT /admin/{domain}/submissions/:id/status.
func (h *AdminHandler) ChangeStatus(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ChangeStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
			return
		}

		sub, err := h.triageService.ChangeStatus(c.Request.Context(), domain, c.Param("id"), req.Status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}

// SendMessage handles POST /admin/{domain}/submissions/:id/messages.
func (h *AdminHandler) SendMessage(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
			return
		}

		msg, err := h.triageService.SendMessage(c.Request.Context(), domain, c.Param("id"), req.Text)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

// AttachFile handles POST /admin/{domain}/submissions/:id/attachments.
func (h *AdminHandler) AttachFile(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateAttachmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
			return
		}

		sub, err := h.triageService.AttachFile(c.Request.Context(), domain, c.Param("id"), req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, sub)
	}
}
