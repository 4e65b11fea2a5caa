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

// DisciplineRepository manages persistence for discipline events.
type DisciplineRepository struct {
	db *sqlx.DB
}

// NewDisciplineRepository constructs a new repository.
func NewDisciplineRepository(db *sqlx.DB) *DisciplineRepository {
	return &DisciplineRepository{db: db}
}

// List returns discipline events per provided filter.
func (r *DisciplineRepository) List(ctx context.Context, filter models.DisciplineFilter) ([]models.DisciplineEvent, int, error) {
	base := "FROM discipline_events"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Student != "" {
		where = append(where, fmt.Sprintf("student_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Student+"%")
	}
	if filter.Category != "" {
		where = append(where, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("event_date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("event_date <= $%d", len(args)+1))
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

	query := fmt.Sprintf(`SELECT id, student_name, event_date, category, description, sanction, created_at, updated_at
%s WHERE %s ORDER BY event_date %s, created_at %s LIMIT %d OFFSET %d`, base, whereClause, order, order, size, offset)
	var events []models.DisciplineEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list discipline events: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count discipline events: %w", err)
	}
	return events, total, nil
}

// Create inserts a new discipline event.
func (r *DisciplineRepository) Create(ctx context.Context, event *models.DisciplineEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	query := `INSERT INTO discipline_events (id, student_name, event_date, category, description, sanction, created_at, updated_at)
VALUES (:id, :student_name, :event_date, :category, :description, :sanction, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create discipline event: %w", err)
	}
	return nil
}

// Update modifies an existing discipline event.
func (r *DisciplineRepository) Update(ctx context.Context, event *models.DisciplineEvent) error {
	event.UpdatedAt = time.Now().UTC()
	query := `UPDATE discipline_events SET student_name = :student_name, event_date = :event_date, category = :category, description = :description, sanction = :sanction, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update discipline event: %w", err)
	}
	return nil
}

// Delete removes a discipline event.
func (r *DisciplineRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM discipline_events WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete discipline event: %w", err)
	}
	return nil
}
