package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/okulpanel/rehberlik-api/internal/models"
)

// RosterRepository manages the imported teacher roster and the class
// display-to-key mapping table.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository constructs a new repository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// ListTeachers returns every imported roster entry.
func (r *RosterRepository) ListTeachers(ctx context.Context) ([]models.RosterTeacher, error) {
	var teachers []models.RosterTeacher
	query := "SELECT id, name, normalized_name, allowed_class_key, imported_at FROM roster_teachers ORDER BY name ASC"
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list roster teachers: %w", err)
	}
	return teachers, nil
}

// ClassMap returns the display-to-key lookup table.
func (r *RosterRepository) ClassMap(ctx context.Context) ([]models.ClassMapping, error) {
	var mappings []models.ClassMapping
	query := `SELECT display, "key" FROM class_mappings ORDER BY "key" ASC`
	if err := r.db.SelectContext(ctx, &mappings, query); err != nil {
		return nil, fmt.Errorf("list class mappings: %w", err)
	}
	return mappings, nil
}

// ReplaceAll swaps the entire roster in one transaction. Imports are bulk,
// out-of-band operations; per-row edits are intentionally not supported.
func (r *RosterRepository) ReplaceAll(ctx context.Context, teachers []models.RosterTeacher, mappings []models.ClassMapping) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM roster_teachers"); err != nil {
		return fmt.Errorf("clear roster teachers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM class_mappings"); err != nil {
		return fmt.Errorf("clear class mappings: %w", err)
	}

	now := time.Now().UTC()
	for i := range teachers {
		if teachers[i].ID == "" {
			teachers[i].ID = uuid.NewString()
		}
		teachers[i].ImportedAt = now
	}

	if len(teachers) > 0 {
		query := `INSERT INTO roster_teachers (id, name, normalized_name, allowed_class_key, imported_at)
VALUES (:id, :name, :normalized_name, :allowed_class_key, :imported_at)`
		if _, err := tx.NamedExecContext(ctx, query, teachers); err != nil {
			return fmt.Errorf("insert roster teachers: %w", err)
		}
	}
	if len(mappings) > 0 {
		query := `INSERT INTO class_mappings (display, "key") VALUES (:display, :key)`
		if _, err := tx.NamedExecContext(ctx, query, mappings); err != nil {
			return fmt.Errorf("insert class mappings: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster import: %w", err)
	}
	return nil
}
