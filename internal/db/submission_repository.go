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

const messagesSubcollection = "messages"

// firestoreSubmissionRepository implements SubmissionRepository using
// Firestore. One instance serves every service domain; the domain
// descriptor names the target collection per call.
type firestoreSubmissionRepository struct {
	client *firestore.Client
}

// NewFirestoreSubmissionRepository creates a new firestoreSubmissionRepository.
func NewFirestoreSubmissionRepository(client *firestore.Client) SubmissionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SubmissionRepository.")
	}
	return &firestoreSubmissionRepository{client: client}
}

// Create adds a new submission document with an auto-generated ID and
// sets sub.ID before writing.
func (r *firestoreSubmissionRepository) Create(ctx context.Context, domain *models.Domain, sub *models.Submission) (string, error) {
	docRef := r.client.Collection(domain.Collection).NewDoc()
	sub.ID = docRef.ID
	sub.Domain = domain.Slug

	if _, err := docRef.Create(ctx, sub); err != nil {
		return "", fmt.Errorf("failed to create %s submission: %w", domain.Slug, err)
	}
	return docRef.ID, nil
}

// GetByID retrieves one submission document.
func (r *firestoreSubmissionRepository) GetByID(ctx context.Context, domain *models.Domain, id string) (*models.Submission, error) {
	if id == "" {
		return nil, errors.New("submission ID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(domain.Collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%s submission '%s' not found: %w", domain.Slug, id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s submission '%s': %w", domain.Slug, id, err)
	}
	return decodeSubmission(docSnap, domain)
}

// ListByUser returns the user's submissions, newest first.
func (r *firestoreSubmissionRepository) ListByUser(ctx context.Context, domain *models.Domain, userID string) ([]*models.Submission, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for ListByUser operation")
	}
	query := r.client.Collection(domain.Collection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, domain, query.Documents(ctx))
}

// ListAll returns every submission in the domain, newest first.
func (r *firestoreSubmissionRepository) ListAll(ctx context.Context, domain *models.Domain) ([]*models.Submission, error) {
	query := r.client.Collection(domain.Collection).OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, domain, query.Documents(ctx))
}

// UpdateStatus overwrites the status field of one submission.
func (r *firestoreSubmissionRepository) UpdateStatus(ctx context.Context, domain *models.Domain, id, newStatus string) error {
	_, err := r.client.Collection(domain.Collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s submission '%s' not found: %w", domain.Slug, id, ErrNotFound)
		}
		return fmt.Errorf("failed to update status of %s submission '%s': %w", domain.Slug, id, err)
	}
	return nil
}

// AppendMessage pushes a new keyed child under the submission's messages
// subcollection. Prior messages are never touched.
func (r *firestoreSubmissionRepository) AppendMessage(ctx context.Context, domain *models.Domain, id string, msg *models.Message) (string, error) {
	docRef := r.client.Collection(domain.Collection).Doc(id).Collection(messagesSubcollection).NewDoc()
	msg.ID = docRef.ID
	if _, err := docRef.Create(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to append message to %s submission '%s': %w", domain.Slug, id, err)
	}
	return docRef.ID, nil
}

// ListMessages returns a submission's messages in append order.
func (r *firestoreSubmissionRepository) ListMessages(ctx context.Context, domain *models.Domain, id string) ([]*models.Message, error) {
	iter := r.client.Collection(domain.Collection).Doc(id).
		Collection(messagesSubcollection).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var msgs []*models.Message
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate messages of %s submission '%s': %w", domain.Slug, id, err)
		}
		var msg models.Message
		if err := doc.DataTo(&msg); err != nil {
			log.Printf("Error decoding message (ID: %s) on %s/%s: %v. Skipping.", doc.Ref.ID, domain.Slug, id, err)
			continue
		}
		msg.ID = doc.Ref.ID
		msgs = append(msgs, &msg)
	}
	return msgs, nil
}

// SetAttachments overwrites the attachment array of one submission. The
// caller fetched the current array and appended to it; two concurrent
// appends can lose one, and no transaction guards against that.
func (r *firestoreSubmissionRepository) SetAttachments(ctx context.Context, domain *models.Domain, id string, attachments []models.Attachment) error {
	_, err := r.client.Collection(domain.Collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "attachments", Value: attachments},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("%s submission '%s' not found: %w", domain.Slug, id, ErrNotFound)
		}
		return fmt.Errorf("failed to set attachments of %s submission '%s': %w", domain.Slug, id, err)
	}
	return nil
}

// Watch streams the collection. Every Firestore snapshot re-delivers the
// full decoded set, newest first; the listener stops when ctx is done or
// deliver returns an error.
func (r *firestoreSubmissionRepository) Watch(ctx context.Context, domain *models.Domain, userID string, deliver func([]*models.Submission) error) error {
	query := r.client.Collection(domain.Collection).Query
	if userID != "" {
		query = query.Where("userId", "==", userID)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	snapIter := query.Snapshots(ctx)
	defer snapIter.Stop()

	for {
		snap, err := snapIter.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("snapshot listener for %s failed: %w", domain.Slug, err)
		}

		subs, err := r.collect(ctx, domain, snap.Documents)
		if err != nil {
			return err
		}
		if err := deliver(subs); err != nil {
			return err
		}
	}
}

func (r *firestoreSubmissionRepository) collect(ctx context.Context, domain *models.Domain, iter *firestore.DocumentIterator) ([]*models.Submission, error) {
	defer iter.Stop()

	var subs []*models.Submission
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate %s submissions: %w", domain.Slug, err)
		}
		sub, err := decodeSubmission(doc, domain)
		if err != nil {
			log.Printf("Error decoding %s submission (ID: %s): %v. Skipping.", domain.Slug, doc.Ref.ID, err)
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func decodeSubmission(doc *firestore.DocumentSnapshot, domain *models.Domain) (*models.Submission, error) {
	var sub models.Submission
	if err := doc.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode submission data for ID '%s': %w", doc.Ref.ID, err)
	}
	sub.ID = doc.Ref.ID
	sub.Domain = domain.Slug
	return &sub, nil
}
