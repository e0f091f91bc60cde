package core

import (
	"context"

	"citizen-portal-backend/internal/models"
)

// UserService defines profile operations.
type UserService interface {
	// GetOrCreate retrieves a profile by UID, creating a citizen profile
	// from the auth claims if none exists. The bool reports creation.
	GetOrCreate(ctx context.Context, userID, email, displayName string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	// AdminUpdate additionally lets the role tag be changed.
	AdminUpdate(ctx context.Context, userID string, req models.AdminUpdateUserRequest) (*models.User, error)
}

// SubmissionService defines citizen-facing submission operations.
type SubmissionService interface {
	Create(ctx context.Context, domain *models.Domain, userID string, req models.CreateSubmissionRequest) (*models.Submission, error)
	// Get returns one submission with its messages. Staff callers see any
	// record; other callers only their own.
	Get(ctx context.Context, domain *models.Domain, id, requesterID string, staff bool) (*models.Submission, []*models.Message, error)
	ListMine(ctx context.Context, domain *models.Domain, userID string) ([]*models.Submission, error)
	ListAll(ctx context.Context, domain *models.Domain) ([]*models.Submission, error)
	Histogram(ctx context.Context, domain *models.Domain) ([]HistogramBucket, error)
	// Watch re-delivers the full result set on every store snapshot until
	// ctx is canceled. userID empty means the unfiltered admin view.
	Watch(ctx context.Context, domain *models.Domain, userID string, deliver func([]*models.Submission) error) error
}

// TriageService defines the admin actions on a submission. The three
// mutations are independent and not transactional with each other.
type TriageService interface {
	ChangeStatus(ctx context.Context, domain *models.Domain, id, newStatus string) (*models.Submission, error)
	SendMessage(ctx context.Context, domain *models.Domain, id, text string) (*models.Message, error)
	AttachFile(ctx context.Context, domain *models.Domain, id string, req models.CreateAttachmentRequest) (*models.Submission, error)
}

// NotificationService writes and serves per-user notifications.
type NotificationService interface {
	// NotifyMovement records that an admin action moved the submission.
	// newStatus is empty for message-only movements. Anonymous
	// submissions produce no notification.
	NotifyMovement(ctx context.Context, domain *models.Domain, sub *models.Submission, newStatus string) error
	ListForUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// PanicService manages the women's-advocacy trusted contact and composes
// the panic SMS deep link.
type PanicService interface {
	GetContact(ctx context.Context, userID string) (*models.PanicContact, error)
	SaveContact(ctx context.Context, userID string, req models.SavePanicContactRequest) (*models.PanicContact, error)
	Trigger(ctx context.Context, userID string, latitude, longitude float64) (*PanicAlert, error)
}

// CouncilService serves the council-member roster from the open-data
// endpoint, behind a TTL cache.
type CouncilService interface {
	ListMembers(ctx context.Context) ([]models.CouncilMember, error)
}

// ReceiptService renders a consumer-protection filing receipt as PDF.
type ReceiptService interface {
	BuildReceipt(sub *models.Submission) ([]byte, error)
}
