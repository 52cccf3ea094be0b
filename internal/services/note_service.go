package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/notes-app/internal/authz"
	"github.com/yukikurage/notes-app/internal/constants"
	"github.com/yukikurage/notes-app/internal/models"
	"github.com/yukikurage/notes-app/internal/repository"
	"github.com/yukikurage/notes-app/internal/utils"
	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteService handles note business logic. Every operation is owner-scoped.
type NoteService struct {
	noteRepo repository.NoteRepository
	userRepo repository.UserRepository
	deleter  repository.Deleter
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repository.NoteRepository, userRepo repository.UserRepository, deleter repository.Deleter) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		userRepo: userRepo,
		deleter:  deleter,
	}
}

// NoteInput represents the editable fields of a note
type NoteInput struct {
	Title   string
	Content string
}

// List returns owner's notes page by page
func (s *NoteService) List(ctx context.Context, owner string, params utils.PaginationParams) ([]models.Note, int64, error) {
	if _, err := authz.AuthorizeOwner(ctx, owner); err != nil {
		return nil, 0, err
	}

	notes, total, err := s.noteRepo.ListByOwner(ctx, owner, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, total, nil
}

// Create adds a note owned by owner
func (s *NoteService) Create(ctx context.Context, owner string, input NoteInput) (*models.Note, error) {
	if _, err := authz.AuthorizeOwner(ctx, owner); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if err := validateNote(title, input.Content); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, owner); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	note := &models.Note{
		Title:   title,
		Content: input.Content,
		Owner:   owner,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// Get returns the note if ctx's identity owns it
func (s *NoteService) Get(ctx context.Context, id uint64) (*models.Note, error) {
	var note *models.Note
	_, err := authz.Authorize(ctx, func(ctx context.Context) (string, error) {
		found, err := s.noteRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrNoteNotFound
			}
			return "", fmt.Errorf("failed to find note: %w", err)
		}
		note = found
		return found.Owner, nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Update replaces title and content of an owned note
func (s *NoteService) Update(ctx context.Context, id uint64, input NoteInput) (*models.Note, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if err := validateNote(title, input.Content); err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = input.Content
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

// Delete removes an owned note and returns it
func (s *NoteService) Delete(ctx context.Context, id uint64) (*models.Note, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.deleter.Delete(ctx, repository.NoteScope(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}
	return note, nil
}

func validateNote(title, content string) error {
	v := &ValidationError{}
	v.checkLength("title", title, 1, constants.MaxNoteTitleLength)
	if strings.TrimSpace(content) == "" {
		v.add("content", "This field is required.")
	}
	return v.errOrNil()
}
