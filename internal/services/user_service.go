package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/notes-app/internal/authz"
	"github.com/yukikurage/notes-app/internal/models"
	"github.com/yukikurage/notes-app/internal/repository"
	"gorm.io/gorm"
)

// UserService handles owner-scoped account operations.
type UserService struct {
	userRepo repository.UserRepository
	deleter  repository.Deleter
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, deleter repository.Deleter) *UserService {
	return &UserService{
		userRepo: userRepo,
		deleter:  deleter,
	}
}

// Profile returns the user named username if ctx's identity owns it.
func (s *UserService) Profile(ctx context.Context, username string) (*models.User, error) {
	if _, err := authz.AuthorizeOwner(ctx, username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// DeleteAccount removes the user and all of its notes atomically.
// The caller clears the session only after this returns nil.
func (s *UserService) DeleteAccount(ctx context.Context, username string) error {
	if _, err := authz.AuthorizeOwner(ctx, username); err != nil {
		return err
	}

	if err := s.deleter.Delete(ctx, repository.UserScope(username)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
