package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

type taskRepository interface {
	List(ctx context.Context, filter models.TaskFilter) ([]models.CounselorTask, int, error)
	Create(ctx context.Context, task *models.CounselorTask) error
	Update(ctx context.Context, task *models.CounselorTask) error
	Delete(ctx context.Context, id string) error
}

// TaskService handles counselor tasks.
type TaskService struct {
	repo      taskRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService constructs the service.
func NewTaskService(repo taskRepository, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, validator: validate, logger: logger}
}

// TaskListRequest describes list filters.
type TaskListRequest struct {
	Status    string `json:"status"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	SortOrder string `json:"sort_order"`
}

// CreateTaskRequest describes the create payload.
type CreateTaskRequest struct {
	Title   string     `json:"title" validate:"required"`
	Detail  *string    `json:"detail"`
	DueDate *time.Time `json:"due_date"`
}

// UpdateTaskRequest describes the update payload.
type UpdateTaskRequest struct {
	Title   string     `json:"title" validate:"required"`
	Detail  *string    `json:"detail"`
	Status  string     `json:"status" validate:"required,oneof=open in_progress done"`
	DueDate *time.Time `json:"due_date"`
}

// List returns tasks with pagination.
func (s *TaskService) List(ctx context.Context, req TaskListRequest) ([]models.CounselorTask, *models.Pagination, error) {
	filter := models.TaskFilter{
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: req.SortOrder,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return tasks, pagination, nil
}

// Create adds a task.
func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*models.CounselorTask, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	task := &models.CounselorTask{
		Title:   req.Title,
		Detail:  req.Detail,
		Status:  models.TaskOpen,
		DueDate: req.DueDate,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}
	return task, nil
}

// Update modifies an existing task.
func (s *TaskService) Update(ctx context.Context, id string, req UpdateTaskRequest) (*models.CounselorTask, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	task := &models.CounselorTask{
		ID:      id,
		Title:   req.Title,
		Detail:  req.Detail,
		Status:  models.TaskStatus(req.Status),
		DueDate: req.DueDate,
	}
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task")
	}
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	return nil
}
