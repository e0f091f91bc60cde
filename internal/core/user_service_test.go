package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citizen-portal-backend/internal/models"
)

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a citizen profile from auth claims", func(t *testing.T) {
		svc := NewUserService(newMemUserRepo())

		user, created, err := svc.GetOrCreate(ctx, "uid-1", "maria@example.com", "Maria Souza")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, models.RoleCitizen, user.Role)
		assert.Equal(t, "maria@example.com", user.Email)
	})

	t.Run("returns the existing profile on repeat calls", func(t *testing.T) {
		svc := NewUserService(newMemUserRepo())
		_, _, err := svc.GetOrCreate(ctx, "uid-1", "maria@example.com", "Maria Souza")
		require.NoError(t, err)

		user, created, err := svc.GetOrCreate(ctx, "uid-1", "other@example.com", "Other Name")
		require.NoError(t, err)
		assert.False(t, created)
		// Claims from the second call do not overwrite the profile.
		assert.Equal(t, "maria@example.com", user.Email)
	})

	t.Run("rejects an empty uid", func(t *testing.T) {
		svc := NewUserService(newMemUserRepo())
		_, _, err := svc.GetOrCreate(ctx, "", "x@example.com", "X")
		assert.Error(t, err)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemUserRepo())
	_, _, err := svc.GetOrCreate(ctx, "uid-1", "maria@example.com", "Maria Souza")
	require.NoError(t, err)

	t.Run("nil fields are left alone, set fields overwrite", func(t *testing.T) {
		phone := "11 98888-7777"
		user, err := svc.Update(ctx, "uid-1", models.UpdateProfileRequest{Phone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "11 98888-7777", user.Phone)
		assert.Equal(t, "Maria Souza", user.Name)
	})

	t.Run("an empty pointer clears the field", func(t *testing.T) {
		empty := ""
		user, err := svc.Update(ctx, "uid-1", models.UpdateProfileRequest{Phone: &empty})
		require.NoError(t, err)
		assert.Empty(t, user.Phone)
	})

	t.Run("unknown user maps to not found", func(t *testing.T) {
		_, err := svc.Update(ctx, "uid-missing", models.UpdateProfileRequest{})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAdminUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemUserRepo())
	_, _, err := svc.GetOrCreate(ctx, "uid-1", "maria@example.com", "Maria Souza")
	require.NoError(t, err)

	t.Run("a valid role tag is applied", func(t *testing.T) {
		role := models.RoleOmbudsman
		user, err := svc.AdminUpdate(ctx, "uid-1", models.AdminUpdateUserRequest{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, models.RoleOmbudsman, user.Role)
	})

	t.Run("an unknown role tag is rejected", func(t *testing.T) {
		role := "superuser"
		_, err := svc.AdminUpdate(ctx, "uid-1", models.AdminUpdateUserRequest{Role: &role})
		assert.ErrorIs(t, err, ErrInvalidRole)

		user, err := svc.GetByID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, models.RoleOmbudsman, user.Role)
	})
}
