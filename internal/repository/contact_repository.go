package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/okulpanel/rehberlik-api/internal/models"
)

// ContactRepository manages persistence for parent contact logs.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository constructs a new repository.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns parent contacts per provided filter.
func (r *ContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]models.ParentContact, int, error) {
	base := "FROM parent_contacts"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Student != "" {
		where = append(where, fmt.Sprintf("student_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Student+"%")
	}
	if filter.Channel != "" {
		where = append(where, fmt.Sprintf("channel = $%d", len(args)+1))
		args = append(args, filter.Channel)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("contact_date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("contact_date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	whereClause := strings.Join(where, " AND ")

	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, student_name, contact_date, channel, summary, created_at, updated_at
%s WHERE %s ORDER BY contact_date %s LIMIT %d OFFSET %d`, base, whereClause, order, size, offset)
	var contacts []models.ParentContact
	if err := r.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list parent contacts: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count parent contacts: %w", err)
	}
	return contacts, total, nil
}

// Create inserts a new parent contact.
func (r *ContactRepository) Create(ctx context.Context, contact *models.ParentContact) error {
	if contact.ID == "" {
		contact.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	contact.UpdatedAt = now
	query := `INSERT INTO parent_contacts (id, student_name, contact_date, channel, summary, created_at, updated_at)
VALUES (:id, :student_name, :contact_date, :channel, :summary, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return fmt.Errorf("create parent contact: %w", err)
	}
	return nil
}

// Update modifies an existing parent contact.
func (r *ContactRepository) Update(ctx context.Context, contact *models.ParentContact) error {
	contact.UpdatedAt = time.Now().UTC()
	query := `UPDATE parent_contacts SET student_name = :student_name, contact_date = :contact_date, channel = :channel, summary = :summary, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return fmt.Errorf("update parent contact: %w", err)
	}
	return nil
}

// Delete removes a parent contact.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM parent_contacts WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete parent contact: %w", err)
	}
	return nil
}
