package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"citizen-portal-backend/internal/models"
)

func seedSubmission(t *testing.T, repo *memSubmissionRepo, domain *models.Domain, userID string) *models.Submission {
	t.Helper()
	sub := &models.Submission{
		Domain:   domain.Slug,
		UserID:   userID,
		Protocol: "20260829-ABCD1234",
		Fields:   map[string]string{"subject": "s", "description": "d"},
		Status:   domain.InitialStatus,
	}
	_, err := repo.Create(context.Background(), domain, sub)
	require.NoError(t, err)
	return sub
}

func TestTriageChangeStatus(t *testing.T) {
	ctx := context.Background()
	domain := mustDomain(t, "legal-aid")

	t.Run("valid transition updates the record and notifies the owner", func(t *testing.T) {
		subRepo := newMemSubmissionRepo()
		recorder := &movementRecorder{}
		svc := NewTriageService(subRepo, recorder, zap.NewNop())
		sub := seedSubmission(t, subRepo, domain, "uid-1")

		updated, err := svc.ChangeStatus(ctx, domain, sub.ID, "Completed")
		require.NoError(t, err)
		assert.Equal(t, "Completed", updated.Status)

		stored, err := subRepo.GetByID(ctx, domain, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, "Completed", stored.Status)

		require.Len(t, recorder.calls, 1)
		assert.Equal(t, "uid-1", recorder.calls[0].UserID)
		assert.Equal(t, "Completed", recorder.calls[0].NewStatus)
	})

	t.Run("any status is reachable from any other", func(t *testing.T) {
		subRepo := newMemSubmissionRepo()
		svc := NewTriageService(subRepo, &movementRecorder{}, zap.NewNop())
		sub := seedSubmission(t, subRepo, domain, "uid-1")

		_, err := svc.ChangeStatus(ctx, domain, sub.ID, "Completed")
		require.NoError(t, err)
		// Reopening a completed record is allowed.
		updated, err := svc.ChangeStatus(ctx, domain, sub.ID, "Awaiting Service")
		require.NoError(t, err)
		assert.Equal(t, "Awaiting Service", updated.Status)
	})

	t.Run("status outside the domain vocabulary is rejected", func(t *testing.T) {
		subRepo := newMemSubmissionRepo()
		recorder := &movementRecorder{}
		svc := NewTriageService(subRepo, recorder, zap.NewNop())
		sub := seedSubmission(t, subRepo, domain, "uid-1")

		_, err := svc.ChangeStatus(ctx, domain, sub.ID, "In Negotiation") // consumer-protection vocabulary
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Empty(t, recorder.calls)

		stored, err := subRepo.GetByID(ctx, domain, sub.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.InitialStatus, stored.Status)
	})

	t.Run("unknown submission maps to not found", func(t *testing.T) {
		svc := NewTriageService(newMemSubmissionRepo(), &movementRecorder{}, zap.NewNop())
		_, err := svc.ChangeStatus(ctx, domain, "missing", "Completed")
		assert.ErrorIs(t, err, ErrSubmissionNotFound)
	})
}

func TestTriageSendMessage(t *testing.T) {
	ctx := context.Background()
	domain := mustDomain(t, "citizen-counter")

	t.Run("messages append in order with the admin sender", func(t *testing.T) {
		subRepo := newMemSubmissionRepo()
		recorder := &movementRecorder{}
		svc := NewTriageService(subRepo, recorder, zap.NewNop())
		sub := seedSubmission(t, subRepo, domain, "uid-1")

		first, err := svc.SendMessage(ctx, domain, sub.ID, "Please bring your ID.")
		require.NoError(t, err)
		second, err := svc.SendMessage(ctx, domain, sub.ID, "Your slot is confirmed.")
		require.NoError(t, err)

		assert.Equal(t, "admin", first.Sender)
		assert.False(t, second.CreatedAt.Before(first.CreatedAt))

		msgs, err := subRepo.ListMessages(ctx, domain, sub.ID)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "Please bring your ID.", msgs[0].Text)
		assert.Equal(t, "Your slot is confirmed.", msgs[1].Text)

		// Message-only movements notify without a status.
		require.Len(t, recorder.calls, 2)
		assert.Empty(t, recorder.calls[0].NewStatus)
	})
}

func TestTriageAttachFile(t *testing.T) {
	ctx := context.Background()
	domain := mustDomain(t, "consumer-protection")

	t.Run("appends an admin attachment with a timestamp", func(t *testing.T) {
		subRepo := newMemSubmissionRepo()
		svc := NewTriageService(subRepo, &movementRecorder{}, zap.NewNop())
		sub := seedSubmission(t, subRepo, domain, "uid-1")

		before := time.Now().UTC()
		updated, err := svc.AttachFile(ctx, domain, sub.ID, models.CreateAttachmentRequest{
			Name:        "decision.pdf",
			ContentType: "application/pdf",
			Data:        "JVBERi0=",
		})
		require.NoError(t, err)
		require.Len(t, updated.Attachments, 1)
		assert.Equal(t, "admin", updated.Attachments[0].Sender)
		assert.False(t, updated.Attachments[0].UploadedAt.Before(before))
	})

	t.Run("concurrent uploads can drop one attachment", func(t *testing.T) {
		// The append is a read-modify-write with no concurrency guard;
		// this pins the current lost-update behavior.
		subRepo := newMemSubmissionRepo()
		svc := NewTriageService(subRepo, &movementRecorder{}, zap.NewNop())
		sub := seedSubmission(t, subRepo, domain, "uid-1")

		stale, err := subRepo.GetByID(ctx, domain, sub.ID)
		require.NoError(t, err)

		_, err = svc.AttachFile(ctx, domain, sub.ID, models.CreateAttachmentRequest{
			Name: "a.pdf", ContentType: "application/pdf", Data: "QQ==",
		})
		require.NoError(t, err)

		// A writer that read before the first upload overwrites it.
		err = subRepo.SetAttachments(ctx, domain, sub.ID, append(stale.Attachments, models.Attachment{
			Name: "b.pdf", ContentType: "application/pdf", Data: "Qg==",
		}))
		require.NoError(t, err)

		stored, err := subRepo.GetByID(ctx, domain, sub.ID)
		require.NoError(t, err)
		require.Len(t, stored.Attachments, 1)
		assert.Equal(t, "b.pdf", stored.Attachments[0].Name)
	})
}
