package core

import (
	"context"
	"fmt"
	"sync"

	"citizen-portal-backend/internal/db"
	"citizen-portal-backend/internal/models"
)

// In-memory repository fakes backing the service tests. They honor the
// same contracts as the Firestore implementations, including ErrNotFound.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]models.User)}
}

func (r *memUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, db.ErrNotFound)
	}
	cp := u
	return &cp, nil
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("user %s already exists", user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		cp := u
		out = append(out, &cp)
	}
	return out, nil
}

type memSubmissionRepo struct {
	mu       sync.Mutex
	nextID   int
	subs     map[string]map[string]*models.Submission // collection -> id -> record
	messages map[string][]*models.Message             // collection/id -> ordered messages
}

func newMemSubmissionRepo() *memSubmissionRepo {
	return &memSubmissionRepo{
		subs:     make(map[string]map[string]*models.Submission),
		messages: make(map[string][]*models.Message),
	}
}

func (r *memSubmissionRepo) key(domain *models.Domain, id string) string {
	return domain.Collection + "/" + id
}

func (r *memSubmissionRepo) Create(_ context.Context, domain *models.Domain, sub *models.Submission) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	sub.ID = fmt.Sprintf("sub-%d", r.nextID)
	if r.subs[domain.Collection] == nil {
		r.subs[domain.Collection] = make(map[string]*models.Submission)
	}
	stored := *sub
	r.subs[domain.Collection][sub.ID] = &stored
	return sub.ID, nil
}

func (r *memSubmissionRepo) GetByID(_ context.Context, domain *models.Domain, id string) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[domain.Collection][id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, db.ErrNotFound)
	}
	cp := *sub
	return &cp, nil
}

func (r *memSubmissionRepo) ListByUser(_ context.Context, domain *models.Domain, userID string) ([]*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Submission
	for _, sub := range r.subs[domain.Collection] {
		if sub.UserID == userID {
			cp := *sub
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSubmissionRepo) ListAll(_ context.Context, domain *models.Domain) ([]*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Submission
	for _, sub := range r.subs[domain.Collection] {
		cp := *sub
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSubmissionRepo) UpdateStatus(_ context.Context, domain *models.Domain, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[domain.Collection][id]
	if !ok {
		return fmt.Errorf("submission %s: %w", id, db.ErrNotFound)
	}
	sub.Status = status
	return nil
}

func (r *memSubmissionRepo) AppendMessage(_ context.Context, domain *models.Domain, id string, msg *models.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[domain.Collection][id]; !ok {
		return "", fmt.Errorf("submission %s: %w", id, db.ErrNotFound)
	}
	k := r.key(domain, id)
	msg.ID = fmt.Sprintf("msg-%d", len(r.messages[k])+1)
	stored := *msg
	r.messages[k] = append(r.messages[k], &stored)
	return msg.ID, nil
}

func (r *memSubmissionRepo) ListMessages(_ context.Context, domain *models.Domain, id string) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages[r.key(domain, id)]
	out := make([]*models.Message, 0, len(msgs))
	for _, m := range msgs {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memSubmissionRepo) SetAttachments(_ context.Context, domain *models.Domain, id string, attachments []models.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[domain.Collection][id]
	if !ok {
		return fmt.Errorf("submission %s: %w", id, db.ErrNotFound)
	}
	sub.Attachments = attachments
	return nil
}

func (r *memSubmissionRepo) Watch(ctx context.Context, domain *models.Domain, userID string, deliver func([]*models.Submission) error) error {
	// One snapshot of the current state, then wait for cancellation.
	var subs []*models.Submission
	var err error
	if userID == "" {
		subs, err = r.ListAll(ctx, domain)
	} else {
		subs, err = r.ListByUser(ctx, domain, userID)
	}
	if err != nil {
		return err
	}
	if err := deliver(subs); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

type memNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (r *memNotificationRepo) Create(_ context.Context, n *models.Notification) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = fmt.Sprintf("ntf-%d", len(r.notifications)+1)
	stored := *n
	r.notifications = append(r.notifications, &stored)
	return n.ID, nil
}

func (r *memNotificationRepo) ListByUser(_ context.Context, userID string) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.TargetUserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.TargetUserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, db.ErrNotFound)
}

type memPanicContactRepo struct {
	mu       sync.Mutex
	contacts map[string]models.PanicContact
}

func newMemPanicContactRepo() *memPanicContactRepo {
	return &memPanicContactRepo{contacts: make(map[string]models.PanicContact)}
}

func (r *memPanicContactRepo) Get(_ context.Context, userID string) (*models.PanicContact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[userID]
	if !ok {
		return nil, fmt.Errorf("panic contact for %s: %w", userID, db.ErrNotFound)
	}
	cp := c
	return &cp, nil
}

func (r *memPanicContactRepo) Set(_ context.Context, contact *models.PanicContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts[contact.UserID] = *contact
	return nil
}

// movementRecorder captures NotifyMovement calls made by the triage service.
type movementRecorder struct {
	mu    sync.Mutex
	calls []movementCall
}

type movementCall struct {
	Domain    string
	UserID    string
	NewStatus string
}

func (m *movementRecorder) NotifyMovement(_ context.Context, domain *models.Domain, sub *models.Submission, newStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, movementCall{Domain: domain.Slug, UserID: sub.UserID, NewStatus: newStatus})
	return nil
}

func (m *movementRecorder) ListForUser(context.Context, string) ([]*models.Notification, error) {
	return nil, nil
}

func (m *movementRecorder) MarkRead(context.Context, string, string) error {
	return nil
}

var _ db.UserRepository = (*memUserRepo)(nil)
var _ db.SubmissionRepository = (*memSubmissionRepo)(nil)
var _ db.NotificationRepository = (*memNotificationRepo)(nil)
var _ db.PanicContactRepository = (*memPanicContactRepo)(nil)
var _ NotificationService = (*movementRecorder)(nil)
