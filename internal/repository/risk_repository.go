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

// RiskRepository manages persistence for risk-tracking entries.
type RiskRepository struct {
	db *sqlx.DB
}

// NewRiskRepository constructs a new repository.
func NewRiskRepository(db *sqlx.DB) *RiskRepository {
	return &RiskRepository{db: db}
}

// List returns risk entries per provided filter.
func (r *RiskRepository) List(ctx context.Context, filter models.RiskFilter) ([]models.RiskEntry, int, error) {
	base := "FROM risk_entries"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Student != "" {
		where = append(where, fmt.Sprintf("student_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Student+"%")
	}
	if filter.Level != "" {
		where = append(where, fmt.Sprintf("level = $%d", len(args)+1))
		args = append(args, filter.Level)
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
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

	query := fmt.Sprintf(`SELECT id, student_name, level, category, note, status, created_at, updated_at
%s WHERE %s ORDER BY created_at %s LIMIT %d OFFSET %d`, base, whereClause, order, size, offset)
	var entries []models.RiskEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list risk entries: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count risk entries: %w", err)
	}
	return entries, total, nil
}

// Create inserts a new risk entry.
func (r *RiskRepository) Create(ctx context.Context, entry *models.RiskEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	query := `INSERT INTO risk_entries (id, student_name, level, category, note, status, created_at, updated_at)
VALUES (:id, :student_name, :level, :category, :note, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create risk entry: %w", err)
	}
	return nil
}

// Update modifies an existing risk entry.
func (r *RiskRepository) Update(ctx context.Context, entry *models.RiskEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	query := `UPDATE risk_entries SET student_name = :student_name, level = :level, category = :category, note = :note, status = :status, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("update risk entry: %w", err)
	}
	return nil
}

// Delete removes a risk entry.
func (r *RiskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM risk_entries WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete risk entry: %w", err)
	}
	return nil
}
