package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/notes-app/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds indexes that AutoMigrate cannot express through struct tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Owner listing ordered by creation time
		{&models.Note{}, "notes", "idx_notes_owner_created_at", "owner, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
