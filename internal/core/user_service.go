package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"citizen-portal-backend/internal/db"
	"citizen-portal-backend/internal/models"
)

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetOrCreate retrieves a profile by UID. If none exists yet, a citizen
// profile is created from the auth claims.
func (s *userService) GetOrCreate(ctx context.Context, userID, email, displayName string) (*models.User, bool, error) {
	if userID == "" {
		return nil, false, errors.New("userID cannot be empty")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			newUser := &models.User{
				ID:        userID,
				Email:     email,
				Name:      displayName,
				Role:      models.RoleCitizen,
				CreatedAt: time.Now().UTC(),
				UpdatedAt: time.Now().UTC(),
			}
			if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
				return nil, false, fmt.Errorf("failed to create user (id: %s) after not found: %w", userID, createErr)
			}
			return newUser, true, nil
		}
		return nil, false, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, false, nil
}

// GetByID retrieves a profile by UID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, nil
}

// Update applies a citizen's own profile edits. The role tag is not
// touchable here.
func (s *userService) Update(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileEdits(user, req)
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user '%s': %w", userID, err)
	}
	return user, nil
}

// List returns every profile, for the admin user dashboard.
func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// AdminUpdate applies an admin's edits, including the role tag.
func (s *userService) AdminUpdate(ctx context.Context, userID string, req models.AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyProfileEdits(user, req.UpdateProfileRequest)
	if req.Role != nil {
		if !models.ValidRoles[*req.Role] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, *req.Role)
		}
		user.Role = *req.Role
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user '%s': %w", userID, err)
	}
	return user, nil
}

func applyProfileEdits(user *models.User, req models.UpdateProfileRequest) {
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.DocumentNumber != nil {
		user.DocumentNumber = *req.DocumentNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Number != nil {
		user.Number = *req.Number
	}
	if req.Complement != nil {
		user.Complement = *req.Complement
	}
	if req.Neighborhood != nil {
		user.Neighborhood = *req.Neighborhood
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.State != nil {
		user.State = *req.State
	}
	if req.PostalCode != nil {
		user.PostalCode = *req.PostalCode
	}
	if req.Sex != nil {
		user.Sex = *req.Sex
	}
	if req.MaritalStatus != nil {
		user.MaritalStatus = *req.MaritalStatus
	}
	if req.AvatarData != nil {
		user.AvatarData = *req.AvatarData
	}
}
