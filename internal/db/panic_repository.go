package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cloud.google.com/go/firestore"

	"citizen-portal-backend/internal/models"
)

const panicContactsCollection = "panic-contacts"

// firestorePanicContactRepository implements PanicContactRepository using
// Firestore, with the owner's UID as the document ID.
type firestorePanicContactRepository struct {
	client *firestore.Client
}

// NewFirestorePanicContactRepository creates a new firestorePanicContactRepository.
func NewFirestorePanicContactRepository(client *firestore.Client) PanicContactRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PanicContactRepository.")
	}
	return &firestorePanicContactRepository{client: client}
}

// Get retrieves the user's configured contact.
func (r *firestorePanicContactRepository) Get(ctx context.Context, userID string) (*models.PanicContact, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for Get operation")
	}
	docSnap, err := r.client.Collection(panicContactsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("panic contact for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get panic contact for user '%s': %w", userID, err)
	}

	var contact models.PanicContact
	if err := docSnap.DataTo(&contact); err != nil {
		return nil, fmt.Errorf("failed to decode panic contact for user '%s': %w", userID, err)
	}
	contact.UserID = docSnap.Ref.ID
	return &contact, nil
}

// Set creates or overwrites the user's contact.
func (r *firestorePanicContactRepository) Set(ctx context.Context, contact *models.PanicContact) error {
	if contact.UserID == "" {
		return errors.New("panic contact user ID cannot be empty for Set operation")
	}
	_, err := r.client.Collection(panicContactsCollection).Doc(contact.UserID).Set(ctx, contact)
	if err != nil {
		return fmt.Errorf("failed to save panic contact for user '%s': %w", contact.UserID, err)
	}
	return nil
}
