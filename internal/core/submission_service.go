package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"citizen-portal-backend/internal/db"
	"citizen-portal-backend/internal/models"
)

// submissionService implements the SubmissionService interface.
type submissionService struct {
	submissionRepo db.SubmissionRepository
	userRepo       db.UserRepository
}

// NewSubmissionService creates a new SubmissionService instance.
func NewSubmissionService(submissionRepo db.SubmissionRepository, userRepo db.UserRepository) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
	}
}

// Create files a new submission. The submitter's current profile is
// snapshotted into the record so later profile edits do not change it;
// anonymous-capable domains may store the sentinel instead. There is no
// idempotency key, so resubmitting creates a distinct record.
func (s *submissionService) Create(ctx context.Context, domain *models.Domain, userID string, req models.CreateSubmissionRequest) (*models.Submission, error) {
	if req.Anonymous && !domain.AllowAnonymous {
		return nil, ErrAnonymousNotAllowed
	}
	for _, field := range domain.RequiredFields {
		if strings.TrimSpace(req.Fields[field]) == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingRequiredField, field)
		}
	}

	sub := &models.Submission{
		Domain:   domain.Slug,
		Protocol: newProtocol(),
		Fields:   req.Fields,
		Status:   domain.InitialStatus,
	}

	if req.Anonymous {
		sub.UserID = models.AnonymousUserID
	} else {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, ErrProfileIncomplete
			}
			return nil, fmt.Errorf("failed to resolve submitter profile '%s': %w", userID, err)
		}
		sub.UserID = userID
		sub.Profile = user.Snapshot()
	}

	now := time.Now().UTC()
	for _, att := range req.Attachments {
		sub.Attachments = append(sub.Attachments, models.Attachment{
			Name:        att.Name,
			ContentType: att.ContentType,
			Data:        att.Data,
			Sender:      "user",
			UploadedAt:  now,
		})
	}

	if _, err := s.submissionRepo.Create(ctx, domain, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Get returns one submission with its messages. Staff callers may read any
// record; everyone else only their own. Anonymous records have no owner,
// so only staff can open them.
func (s *submissionService) Get(ctx context.Context, domain *models.Domain, id, requesterID string, staff bool) (*models.Submission, []*models.Message, error) {
	sub, err := s.submissionRepo.GetByID(ctx, domain, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %s/%s", ErrSubmissionNotFound, domain.Slug, id)
		}
		return nil, nil, err
	}
	if !staff && (sub.Anonymous() || sub.UserID != requesterID) {
		return nil, nil, ErrForbiddenAccess
	}

	msgs, err := s.submissionRepo.ListMessages(ctx, domain, id)
	if err != nil {
		return nil, nil, err
	}
	return sub, msgs, nil
}

// ListMine returns the caller's submissions, newest first.
func (s *submissionService) ListMine(ctx context.Context, domain *models.Domain, userID string) ([]*models.Submission, error) {
	return s.submissionRepo.ListByUser(ctx, domain, userID)
}

// ListAll returns every submission in the domain, newest first.
func (s *submissionService) ListAll(ctx context.Context, domain *models.Domain) ([]*models.Submission, error) {
	return s.submissionRepo.ListAll(ctx, domain)
}

// Histogram folds the current list into the domain's fixed ordered
// category set.
func (s *submissionService) Histogram(ctx context.Context, domain *models.Domain) ([]HistogramBucket, error) {
	subs, err := s.submissionRepo.ListAll(ctx, domain)
	if err != nil {
		return nil, err
	}
	return BuildHistogram(domain, subs), nil
}

// Watch re-delivers the full result set on every store snapshot.
func (s *submissionService) Watch(ctx context.Context, domain *models.Domain, userID string, deliver func([]*models.Submission) error) error {
	return s.submissionRepo.Watch(ctx, domain, userID, deliver)
}

// newProtocol builds the human-referencable protocol number printed on
// receipts and notifications.
func newProtocol() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return time.Now().UTC().Format("20060102") + "-" + suffix
}
