package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

type reminderRepository interface {
	List(ctx context.Context, filter models.ReminderFilter) ([]models.FollowUpReminder, int, error)
	Create(ctx context.Context, reminder *models.FollowUpReminder) error
	Update(ctx context.Context, reminder *models.FollowUpReminder) error
	Delete(ctx context.Context, id string) error
}

// ReminderService handles follow-up reminders.
type ReminderService struct {
	repo      reminderRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReminderService constructs the service.
func NewReminderService(repo reminderRepository, validate *validator.Validate, logger *zap.Logger) *ReminderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// ReminderListRequest describes list filters.
type ReminderListRequest struct {
	Student   string `json:"student"`
	Done      *bool  `json:"done"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	SortOrder string `json:"sort_order"`
}

// CreateReminderRequest describes the create payload.
type CreateReminderRequest struct {
	StudentName string    `json:"student_name" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Note        string    `json:"note" validate:"required"`
}

// UpdateReminderRequest describes the update payload.
type UpdateReminderRequest struct {
	StudentName string    `json:"student_name" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Note        string    `json:"note" validate:"required"`
	Done        bool      `json:"done"`
}

// List returns reminders with pagination.
func (s *ReminderService) List(ctx context.Context, req ReminderListRequest) ([]models.FollowUpReminder, *models.Pagination, error) {
	filter := models.ReminderFilter{
		Student:   req.Student,
		Done:      req.Done,
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
	reminders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reminders")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return reminders, pagination, nil
}

// Due returns open reminders whose due date has passed.
func (s *ReminderService) Due(ctx context.Context) ([]models.FollowUpReminder, error) {
	open := false
	deadline := s.now()
	reminders, _, err := s.repo.List(ctx, models.ReminderFilter{
		Done:      &open,
		DueBefore: &deadline,
		PageSize:  200,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list due reminders")
	}
	return reminders, nil
}

// Create schedules a reminder.
func (s *ReminderService) Create(ctx context.Context, req CreateReminderRequest) (*models.FollowUpReminder, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	reminder := &models.FollowUpReminder{
		StudentName: req.StudentName,
		DueDate:     req.DueDate,
		Note:        req.Note,
	}
	if err := s.repo.Create(ctx, reminder); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reminder")
	}
	return reminder, nil
}

// Update modifies an existing reminder, including marking it done.
func (s *ReminderService) Update(ctx context.Context, id string, req UpdateReminderRequest) (*models.FollowUpReminder, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	reminder := &models.FollowUpReminder{
		ID:          id,
		StudentName: req.StudentName,
		DueDate:     req.DueDate,
		Note:        req.Note,
		Done:        req.Done,
	}
	if err := s.repo.Update(ctx, reminder); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update reminder")
	}
	return reminder, nil
}

// Delete removes a reminder.
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete reminder")
	}
	return nil
}
