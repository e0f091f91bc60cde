package db

import (
	"context"

	"citizen-portal-backend/internal/models"
)

// UserRepository defines the interface for user-profile storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
}

// SubmissionRepository defines the interface for submission storage
// operations. Every method takes the owning domain descriptor, so one
// implementation serves all service collections.
type SubmissionRepository interface {
	Create(ctx context.Context, domain *models.Domain, sub *models.Submission) (string, error)
	GetByID(ctx context.Context, domain *models.Domain, id string) (*models.Submission, error)
	// ListByUser returns the user's submissions, newest first.
	ListByUser(ctx context.Context, domain *models.Domain, userID string) ([]*models.Submission, error)
	// ListAll returns every submission in the domain, newest first.
	ListAll(ctx context.Context, domain *models.Domain) ([]*models.Submission, error)
	UpdateStatus(ctx context.Context, domain *models.Domain, id, status string) error
	AppendMessage(ctx context.Context, domain *models.Domain, id string, msg *models.Message) (string, error)
	ListMessages(ctx context.Context, domain *models.Domain, id string) ([]*models.Message, error)
	// SetAttachments overwrites the attachment array. Callers perform the
	// read-modify-write; there is no concurrency guard, matching the
	// behavior this service inherited.
	SetAttachments(ctx context.Context, domain *models.Domain, id string, attachments []models.Attachment) error
	// Watch delivers the full decoded result set on every snapshot of the
	// collection (optionally filtered to one user) until ctx is done.
	Watch(ctx context.Context, domain *models.Domain, userID string, deliver func([]*models.Submission) error) error
}

// NotificationRepository defines the interface for notification storage.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (string, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// PanicContactRepository defines the interface for panic-button contact
// storage, keyed by the owning user's UID.
type PanicContactRepository interface {
	Get(ctx context.Context, userID string) (*models.PanicContact, error)
	Set(ctx context.Context, contact *models.PanicContact) error
}
