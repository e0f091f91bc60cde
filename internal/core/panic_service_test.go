package core

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizen-portal-backend/internal/models"
)

const testHelpMessage = "HELP! I need urgent assistance. My approximate location is:"

func TestPanicTrigger(t *testing.T) {
	ctx := context.Background()

	t.Run("without a configured contact the trigger aborts", func(t *testing.T) {
		svc := NewPanicService(newMemPanicContactRepo(), testHelpMessage)
		alert, err := svc.Trigger(ctx, "uid-1", -23.5505, -46.6333)
		assert.ErrorIs(t, err, ErrPanicContactNotConfigured)
		assert.Nil(t, alert)
	})

	t.Run("a contact without a phone is treated as not configured", func(t *testing.T) {
		repo := newMemPanicContactRepo()
		require.NoError(t, repo.Set(ctx, &models.PanicContact{UserID: "uid-1", Email: "aunt@example.com"}))
		svc := NewPanicService(repo, testHelpMessage)

		_, err := svc.Trigger(ctx, "uid-1", -23.5505, -46.6333)
		assert.ErrorIs(t, err, ErrPanicContactNotConfigured)
	})

	t.Run("composes the maps url and sms deep link", func(t *testing.T) {
		repo := newMemPanicContactRepo()
		svc := NewPanicService(repo, testHelpMessage)
		_, err := svc.SaveContact(ctx, "uid-1", models.SavePanicContactRequest{Phone: "+5511988887777"})
		require.NoError(t, err)

		alert, err := svc.Trigger(ctx, "uid-1", -23.5505, -46.6333)
		require.NoError(t, err)

		assert.Equal(t, "+5511988887777", alert.ContactPhone)
		assert.Equal(t, "https://www.google.com/maps?q=-23.5505,-46.6333", alert.MapsURL)
		assert.Equal(t, testHelpMessage+" "+alert.MapsURL, alert.Message)

		require.True(t, strings.HasPrefix(alert.SMSLink, "sms:+5511988887777?body="))
		body, err := url.QueryUnescape(strings.TrimPrefix(alert.SMSLink, "sms:+5511988887777?body="))
		require.NoError(t, err)
		assert.Equal(t, alert.Message, body)
	})

	t.Run("whole-number coordinates render without trailing zeros", func(t *testing.T) {
		repo := newMemPanicContactRepo()
		require.NoError(t, repo.Set(ctx, &models.PanicContact{UserID: "uid-1", Phone: "123"}))
		svc := NewPanicService(repo, testHelpMessage)

		alert, err := svc.Trigger(ctx, "uid-1", -23, -46)
		require.NoError(t, err)
		assert.Equal(t, "https://www.google.com/maps?q=-23,-46", alert.MapsURL)
	})
}

func TestPanicContactRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemPanicContactRepo()
	svc := NewPanicService(repo, testHelpMessage)

	_, err := svc.GetContact(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrPanicContactNotConfigured)

	saved, err := svc.SaveContact(ctx, "uid-1", models.SavePanicContactRequest{
		Phone: "+5511988887777",
		Email: "aunt@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", saved.UserID)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := svc.GetContact(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "+5511988887777", got.Phone)
	assert.Equal(t, "aunt@example.com", got.Email)

	// Saving again overwrites in place.
	_, err = svc.SaveContact(ctx, "uid-1", models.SavePanicContactRequest{Phone: "+5511900001111"})
	require.NoError(t, err)
	got, err = svc.GetContact(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "+5511900001111", got.Phone)
	assert.Empty(t, got.Email)
}
