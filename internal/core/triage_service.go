package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"citizen-portal-backend/internal/db"
	"citizen-portal-backend/internal/models"
)

// triageService implements the TriageService interface. Each action is an
// independent write; the write-then-notify pairs are not atomic, and a
// failed notification is logged rather than rolled back.
type triageService struct {
	submissionRepo db.SubmissionRepository
	notifications  NotificationService
	logger         *zap.Logger
}

// NewTriageService creates a new TriageService instance.
func NewTriageService(submissionRepo db.SubmissionRepository, notifications NotificationService, logger *zap.Logger) TriageService {
	return &triageService{
		submissionRepo: submissionRepo,
		notifications:  notifications,
		logger:         logger,
	}
}

// ChangeStatus overwrites the submission's status. Any status in the
// domain vocabulary is reachable from any other; a completed record can be
// reopened by setting it back.
func (s *triageService) ChangeStatus(ctx context.Context, domain *models.Domain, id, newStatus string) (*models.Submission, error) {
	if !domain.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q for %s", ErrInvalidStatus, newStatus, domain.Slug)
	}

	sub, err := s.getSubmission(ctx, domain, id)
	if err != nil {
		return nil, err
	}

	if err := s.submissionRepo.UpdateStatus(ctx, domain, id, newStatus); err != nil {
		return nil, err
	}
	sub.Status = newStatus

	s.notify(ctx, domain, sub, newStatus)
	return sub, nil
}

// SendMessage appends a keyed message with sender "admin". Prior messages
// are never removed or reordered.
func (s *triageService) SendMessage(ctx context.Context, domain *models.Domain, id, text string) (*models.Message, error) {
	sub, err := s.getSubmission(ctx, domain, id)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		Sender:    "admin",
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.submissionRepo.AppendMessage(ctx, domain, id, msg); err != nil {
		return nil, err
	}

	s.notify(ctx, domain, sub, "")
	return msg, nil
}

// AttachFile appends one inline-encoded file to the submission's
// attachment array via read-modify-write. There is no optimistic
// concurrency guard: two concurrent admin uploads to the same record can
// race and silently drop one attachment. Known, inherited behavior.
func (s *triageService) AttachFile(ctx context.Context, domain *models.Domain, id string, req models.CreateAttachmentRequest) (*models.Submission, error) {
	sub, err := s.getSubmission(ctx, domain, id)
	if err != nil {
		return nil, err
	}

	attachments := append(sub.Attachments, models.Attachment{
		Name:        req.Name,
		ContentType: req.ContentType,
		Data:        req.Data,
		Sender:      "admin",
		UploadedAt:  time.Now().UTC(),
	})
	if err := s.submissionRepo.SetAttachments(ctx, domain, id, attachments); err != nil {
		return nil, err
	}
	sub.Attachments = attachments
	return sub, nil
}

func (s *triageService) getSubmission(ctx context.Context, domain *models.Domain, id string) (*models.Submission, error) {
	sub, err := s.submissionRepo.GetByID(ctx, domain, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrSubmissionNotFound, domain.Slug, id)
		}
		return nil, err
	}
	return sub, nil
}

func (s *triageService) notify(ctx context.Context, domain *models.Domain, sub *models.Submission, newStatus string) {
	if err := s.notifications.NotifyMovement(ctx, domain, sub, newStatus); err != nil {
		s.logger.Warn("notification after triage action failed",
			zap.String("domain", domain.Slug),
			zap.String("submissionId", sub.ID),
			zap.Error(err),
		)
	}
}
