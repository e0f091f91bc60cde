// Package worker hosts the background consumers that run alongside the
// HTTP server.
package worker

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"citizen-portal-backend/internal/core"
	"citizen-portal-backend/pkg/mailer"
	"citizen-portal-backend/pkg/messagequeue"
)

// NotificationWorker consumes notification events from the queue and
// emails the target user. Delivery failures are logged and dropped; there
// is no retry.
type NotificationWorker struct {
	queue     messagequeue.MessageQueue
	queueName string
	mail      *mailer.Mailer
	logger    *zap.Logger
}

// NewNotificationWorker creates a new NotificationWorker.
func NewNotificationWorker(queue messagequeue.MessageQueue, queueName string, mail *mailer.Mailer, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{
		queue:     queue,
		queueName: queueName,
		mail:      mail,
		logger:    logger,
	}
}

// Run consumes until the queue channel closes or ctx is canceled.
func (w *NotificationWorker) Run(ctx context.Context) error {
	events, err := w.queue.Consume(w.queueName)
	if err != nil {
		return err
	}
	w.logger.Info("notification worker started", zap.String("queue", w.queueName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case body, ok := <-events:
			if !ok {
				w.logger.Info("notification queue closed, worker exiting")
				return nil
			}
			w.handle(body)
		}
	}
}

func (w *NotificationWorker) handle(body []byte) {
	var event core.NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		w.logger.Warn("dropping malformed notification event", zap.Error(err))
		return
	}

	n := event.Notification
	if n.UserEmail == "" {
		// Nothing to email; the in-app notification was already stored.
		return
	}

	if err := w.mail.Send(n.UserEmail, n.Title, n.Body); err != nil {
		w.logger.Warn("failed to email notification",
			zap.String("notificationId", n.ID),
			zap.String("domain", n.Domain),
			zap.Error(err),
		)
		return
	}
	w.logger.Info("notification emailed",
		zap.String("notificationId", n.ID),
		zap.String("domain", n.Domain),
	)
}
