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

// TaskRepository manages persistence for counselor tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs a new repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns tasks per provided filter.
func (r *TaskRepository) List(ctx context.Context, filter models.TaskFilter) ([]models.CounselorTask, int, error) {
	base := "FROM counselor_tasks"
	where := []string{"1=1"}
	args := []interface{}{}
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

	query := fmt.Sprintf(`SELECT id, title, detail, status, due_date, created_at, updated_at
%s WHERE %s ORDER BY created_at %s LIMIT %d OFFSET %d`, base, whereClause, order, size, offset)
	var tasks []models.CounselorTask
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}
	return tasks, total, nil
}

// Create inserts a new task.
func (r *TaskRepository) Create(ctx context.Context, task *models.CounselorTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now
	query := `INSERT INTO counselor_tasks (id, title, detail, status, due_date, created_at, updated_at)
VALUES (:id, :title, :detail, :status, :due_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Update modifies an existing task.
func (r *TaskRepository) Update(ctx context.Context, task *models.CounselorTask) error {
	task.UpdatedAt = time.Now().UTC()
	query := `UPDATE counselor_tasks SET title = :title, detail = :detail, status = :status, due_date = :due_date, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM counselor_tasks WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
