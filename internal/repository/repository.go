package repository

import (
	"context"

	"github.com/yukikurage/notes-app/internal/models"
	"github.com/yukikurage/notes-app/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user. Username and email uniqueness are enforced by the storage layer.
	Create(ctx context.Context, user *models.User) error

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	// Create creates a new note
	Create(ctx context.Context, note *models.Note) error

	// FindByID finds a note by ID
	FindByID(ctx context.Context, id uint64) (*models.Note, error)

	// ListByOwner lists an owner's notes, newest first, with the total count
	ListByOwner(ctx context.Context, owner string, params utils.PaginationParams) ([]models.Note, int64, error)

	// Update saves title and content of an existing note
	Update(ctx context.Context, note *models.Note) error
}

// Deleter removes every row named by a scope in a single transaction
type Deleter interface {
	Delete(ctx context.Context, scope DeleteScope) error
}
