package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"citizen-portal-backend/internal/db"
	"citizen-portal-backend/internal/models"
	"citizen-portal-backend/pkg/messagequeue"
)

// NotificationEvent is the queue payload consumed by the email worker.
type NotificationEvent struct {
	Notification models.Notification `json:"notification"`
}

// notificationService implements the NotificationService interface. Each
// movement is written to the store and, best effort, published to the
// fan-out queue for email delivery.
type notificationService struct {
	notificationRepo db.NotificationRepository
	queue            messagequeue.MessageQueue // nil disables fan-out
	queueName        string
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService instance.
// queue may be nil when no broker is configured.
func NewNotificationService(notificationRepo db.NotificationRepository, queue messagequeue.MessageQueue, queueName string, logger *zap.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		queue:            queue,
		queueName:        queueName,
		logger:           logger,
	}
}

// NotifyMovement records that an admin action moved a submission.
// Anonymous submissions carry no target, so nothing is written.
func (s *notificationService) NotifyMovement(ctx context.Context, domain *models.Domain, sub *models.Submission, newStatus string) error {
	if sub.Anonymous() {
		return nil
	}

	body := fmt.Sprintf("Open the portal to follow protocol %s.", sub.Protocol)
	if newStatus != "" {
		body = fmt.Sprintf("Its status is now %q. %s", newStatus, body)
	}

	n := &models.Notification{
		TargetUserID: sub.UserID,
		Title:        fmt.Sprintf("Your %s request has been updated.", domain.Title),
		Body:         body,
		Domain:       domain.Slug,
		Protocol:     sub.ID,
		IsRead:       false,
		CreatedAt:    time.Now().UTC(),
	}
	if sub.Profile != nil {
		n.UserEmail = sub.Profile.Email
	}

	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification for user '%s': %w", sub.UserID, err)
	}

	s.publish(n)
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (s *notificationService) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

// MarkRead flips the read flag on one of the caller's notifications.
func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotificationNotFound, id)
		}
		return err
	}
	return nil
}

// publish pushes the event to the queue. Delivery is best effort; a broker
// failure must not fail the triage action that produced the notification.
func (s *notificationService) publish(n *models.Notification) {
	if s.queue == nil {
		return
	}
	payload, err := json.Marshal(NotificationEvent{Notification: *n})
	if err != nil {
		s.logger.Warn("failed to encode notification event", zap.Error(err))
		return
	}
	if err := s.queue.Publish(s.queueName, payload); err != nil {
		s.logger.Warn("failed to publish notification event",
			zap.String("queue", s.queueName),
			zap.Error(err),
		)
	}
}
