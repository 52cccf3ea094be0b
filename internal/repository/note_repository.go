package repository

import (
	"context"

	"github.com/yukikurage/notes-app/internal/database"
	"github.com/yukikurage/notes-app/internal/models"
	"github.com/yukikurage/notes-app/internal/utils"
	"gorm.io/gorm"
)

// GormNoteRepository is a GORM implementation of NoteRepository
type GormNoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &GormNoteRepository{db: db}
}

// Create creates a new note
func (r *GormNoteRepository) Create(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// FindByID finds a note by ID
func (r *GormNoteRepository) FindByID(ctx context.Context, id uint64) (*models.Note, error) {
	var note models.Note
	if err := r.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListByOwner lists an owner's notes with pagination
func (r *GormNoteRepository) ListByOwner(ctx context.Context, owner string, params utils.PaginationParams) ([]models.Note, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Note{}).Where("owner = ?", owner)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	notes := []models.Note{}
	listQuery := query.Order("created_at DESC").Order("id DESC")
	if params.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(params))
	}
	if err := listQuery.Find(&notes).Error; err != nil {
		return nil, 0, err
	}

	return notes, total, nil
}

// Update saves title and content. The owner column is never written.
func (r *GormNoteRepository) Update(ctx context.Context, note *models.Note) error {
	return r.db.WithContext(ctx).
		Model(&models.Note{ID: note.ID}).
		Updates(map[string]interface{}{
			"title":   note.Title,
			"content": note.Content,
		}).Error
}
