package service

import (
	"context"
	"fmt"

	apperrors "carebook/internal/errors"
	"carebook/internal/models"
)

// UserService exposes identity-record reads and admin promotion.
type UserService struct {
	userStore UserStore
}

func NewUserService(userStore UserStore) *UserService {
	return &UserService{userStore: userStore}
}

func (s *UserService) GetRole(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email is required: %w", apperrors.ErrBadRequest)
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
	}

	return user.Role, nil
}

// Promote grants the admin role to an existing user
func (s *UserService) Promote(ctx context.Context, email string) error {
	updated, err := s.userStore.UpdateRole(ctx, email, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if !updated {
		return fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
	}
	return nil
}
