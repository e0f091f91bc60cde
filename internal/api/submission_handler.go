package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"citizen-portal-backend/internal/core"
	"citizen-portal-backend/internal/models"
)

// SubmissionHandler serves the citizen-facing submission endpoints. One
// instance covers every service domain; routes bind a domain descriptor
// into each handler closure.
type SubmissionHandler struct {
	submissionService core.SubmissionService
	receiptService    core.ReceiptService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(ss core.SubmissionService, rs core.ReceiptService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss, receiptService: rs}
}

// Create handles POST /{domain}/submissions.
func (h *SubmissionHandler) Create(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req models.CreateSubmissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
			return
		}

		sub, err := h.submissionService.Create(c.Request.Context(), domain, userID, req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sub)
	}
}

// ListMine handles GET /{domain}/submissions.
func (h *SubmissionHandler) ListMine(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		subs, err := h.submissionService.ListMine(c.Request.Context(), domain, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, subs)
	}
}

// Get handles GET /{domain}/submissions/:id for the submitting citizen.
func (h *SubmissionHandler) Get(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		sub, msgs, err := h.submissionService.Get(c.Request.Context(), domain, c.Param("id"), userID, false)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"submission": sub, "messages": msgs})
	}
}

// Stream handles GET /{domain}/submissions/stream as server-sent events.
// Every store snapshot re-delivers the caller's full result set; the
// listener is released when the request context ends.
func (h *SubmissionHandler) Stream(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}
		streamSubmissions(c, h.submissionService, domain, userID)
	}
}

// Receipt handles GET /{domain}/submissions/:id/receipt, rendering the
// filing receipt PDF for the submitting citizen.
func (h *SubmissionHandler) Receipt(domain *models.Domain) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		sub, _, err := h.submissionService.Get(c.Request.Context(), domain, c.Param("id"), userID, false)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		pdf, err := h.receiptService.BuildReceipt(sub)
		if err != nil {
			respondServiceError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "receipt-"+sub.Protocol+".pdf"))
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}

// streamSubmissions is shared between the citizen and admin stream
// endpoints. userID empty streams the unfiltered admin view.
func streamSubmissions(c *gin.Context, svc core.SubmissionService, domain *models.Domain, userID string) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	err := svc.Watch(c.Request.Context(), domain, userID, func(subs []*models.Submission) error {
		c.SSEvent("submissions", subs)
		c.Writer.Flush()
		return nil
	})
	if err != nil && c.Request.Context().Err() == nil {
		// The stream broke for a reason other than the client going away.
		c.SSEvent("error", ErrorResponse{Error: "subscription lost"})
		c.Writer.Flush()
	}
}
