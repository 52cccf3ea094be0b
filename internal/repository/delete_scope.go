package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/notes-app/internal/models"
	"gorm.io/gorm"
)

type deleteStep struct {
	model     interface{}
	query     string
	args      []interface{}
	mustExist bool
}

// DeleteScope names the rows a Deleter removes, in order.
// A step marked mustExist aborts the transaction with gorm.ErrRecordNotFound when it removes nothing.
type DeleteScope struct {
	name  string
	steps []deleteStep
}

// Name identifies the scope in errors returned by Delete.
func (s DeleteScope) Name() string {
	return s.name
}

// NoteScope removes a single note.
func NoteScope(id uint64) DeleteScope {
	return DeleteScope{
		name: "note",
		steps: []deleteStep{
			{model: &models.Note{}, query: "id = ?", args: []interface{}{id}, mustExist: true},
		},
	}
}

// UserScope removes a user and every note it owns.
func UserScope(username string) DeleteScope {
	return DeleteScope{
		name: "user",
		steps: []deleteStep{
			{model: &models.Note{}, query: "owner = ?", args: []interface{}{username}},
			{model: &models.User{}, query: "username = ?", args: []interface{}{username}, mustExist: true},
		},
	}
}

// GormDeleter is a GORM implementation of Deleter
type GormDeleter struct {
	db *gorm.DB
}

// NewDeleter creates a new Deleter
func NewDeleter(db *gorm.DB) Deleter {
	return &GormDeleter{db: db}
}

// Delete applies every step of scope in one transaction.
// Errors are prefixed with the scope name and still match gorm sentinels with errors.Is.
func (d *GormDeleter) Delete(ctx context.Context, scope DeleteScope) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, step := range scope.steps {
			result := tx.Where(step.query, step.args...).Delete(step.model)
			if result.Error != nil {
				return result.Error
			}
			if step.mustExist && result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", scope.Name(), err)
	}
	return nil
}
