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

// ReminderRepository manages persistence for follow-up reminders.
type ReminderRepository struct {
	db *sqlx.DB
}

// NewReminderRepository constructs a new repository.
func NewReminderRepository(db *sqlx.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// List returns reminders per provided filter.
func (r *ReminderRepository) List(ctx context.Context, filter models.ReminderFilter) ([]models.FollowUpReminder, int, error) {
	base := "FROM follow_up_reminders"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Student != "" {
		where = append(where, fmt.Sprintf("student_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Student+"%")
	}
	if filter.Done != nil {
		where = append(where, fmt.Sprintf("done = $%d", len(args)+1))
		args = append(args, *filter.Done)
	}
	if filter.DueBefore != nil {
		where = append(where, fmt.Sprintf("due_date <= $%d", len(args)+1))
		args = append(args, *filter.DueBefore)
	}
	whereClause := strings.Join(where, " AND ")

	order := "ASC"
	if strings.EqualFold(filter.SortOrder, "desc") {
		order = "DESC"
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

	query := fmt.Sprintf(`SELECT id, student_name, due_date, note, done, created_at, updated_at
%s WHERE %s ORDER BY due_date %s LIMIT %d OFFSET %d`, base, whereClause, order, size, offset)
	var reminders []models.FollowUpReminder
	if err := r.db.SelectContext(ctx, &reminders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list reminders: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count reminders: %w", err)
	}
	return reminders, total, nil
}

// Create inserts a new reminder.
func (r *ReminderRepository) Create(ctx context.Context, reminder *models.FollowUpReminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = now
	}
	reminder.UpdatedAt = now
	query := `INSERT INTO follow_up_reminders (id, student_name, due_date, note, done, created_at, updated_at)
VALUES (:id, :student_name, :due_date, :note, :done, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reminder); err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// Update modifies an existing reminder.
func (r *ReminderRepository) Update(ctx context.Context, reminder *models.FollowUpReminder) error {
	reminder.UpdatedAt = time.Now().UTC()
	query := `UPDATE follow_up_reminders SET student_name = :student_name, due_date = :due_date, note = :note, done = :done, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, reminder); err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}
	return nil
}

// Delete removes a reminder.
func (r *ReminderRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM follow_up_reminders WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}
