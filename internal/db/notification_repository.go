package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"citizen-portal-backend/internal/models"
)

const notificationsCollection = "notifications"

// firestoreNotificationRepository implements NotificationRepository using
// Firestore.
type firestoreNotificationRepository struct {
	client *firestore.Client
}

// NewFirestoreNotificationRepository creates a new firestoreNotificationRepository.
func NewFirestoreNotificationRepository(client *firestore.Client) NotificationRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for NotificationRepository.")
	}
	return &firestoreNotificationRepository{client: client}
}

// Create adds a new notification document with an auto-generated ID.
func (r *firestoreNotificationRepository) Create(ctx context.Context, n *models.Notification) (string, error) {
	if n.TargetUserID == "" {
		return "", errors.New("notification target user ID cannot be empty")
	}
	docRef := r.client.Collection(notificationsCollection).NewDoc()
	n.ID = docRef.ID
	if _, err := docRef.Create(ctx, n); err != nil {
		return "", fmt.Errorf("failed to create notification: %w", err)
	}
	return docRef.ID, nil
}

// ListByUser returns the user's notifications, newest first.
func (r *firestoreNotificationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for ListByUser operation")
	}
	iter := r.client.Collection(notificationsCollection).
		Where("targetUserId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var items []*models.Notification
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate notifications for user '%s': %w", userID, err)
		}
		var n models.Notification
		if err := doc.DataTo(&n); err != nil {
			log.Printf("Error decoding notification (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		n.ID = doc.Ref.ID
		items = append(items, &n)
	}
	return items, nil
}

// MarkRead flips the read flag. The target-user check keeps one user from
// acknowledging another's notification.
func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	docRef := r.client.Collection(notificationsCollection).Doc(id)
	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("notification '%s' not found: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to get notification '%s': %w", id, err)
	}

	var n models.Notification
	if err := docSnap.DataTo(&n); err != nil {
		return fmt.Errorf("failed to decode notification '%s': %w", id, err)
	}
	if n.TargetUserID != userID {
		return fmt.Errorf("notification '%s' does not belong to user '%s': %w", id, userID, ErrNotFound)
	}

	if _, err := docRef.Update(ctx, []firestore.Update{{Path: "isRead", Value: true}}); err != nil {
		return fmt.Errorf("failed to mark notification '%s' read: %w", id, err)
	}
	return nil
}
