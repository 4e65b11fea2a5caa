package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

type disciplineRepository interface {
	List(ctx context.Context, filter models.DisciplineFilter) ([]models.DisciplineEvent, int, error)
	Create(ctx context.Context, event *models.DisciplineEvent) error
	Update(ctx context.Context, event *models.DisciplineEvent) error
	Delete(ctx context.Context, id string) error
}

// DisciplineService handles discipline event records.
type DisciplineService struct {
	repo      disciplineRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDisciplineService constructs the service.
func NewDisciplineService(repo disciplineRepository, validate *validator.Validate, logger *zap.Logger) *DisciplineService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DisciplineService{repo: repo, validator: validate, logger: logger}
}

// DisciplineListRequest describes list filters.
type DisciplineListRequest struct {
	Student   string     `json:"student"`
	Category  string     `json:"category"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
	SortOrder string     `json:"sort_order"`
}

// CreateDisciplineRequest describes the create payload.
type CreateDisciplineRequest struct {
	StudentName string    `json:"student_name" validate:"required"`
	EventDate   time.Time `json:"event_date" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Sanction    *string   `json:"sanction"`
}

// UpdateDisciplineRequest describes the update payload.
type UpdateDisciplineRequest struct {
	StudentName string    `json:"student_name" validate:"required"`
	EventDate   time.Time `json:"event_date" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Sanction    *string   `json:"sanction"`
}

// List returns discipline events with pagination.
func (s *DisciplineService) List(ctx context.Context, req DisciplineListRequest) ([]models.DisciplineEvent, *models.Pagination, error) {
	filter := models.DisciplineFilter{
		Student:   req.Student,
		Category:  req.Category,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
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
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list discipline events")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return events, pagination, nil
}

// Create adds a discipline event.
func (s *DisciplineService) Create(ctx context.Context, req CreateDisciplineRequest) (*models.DisciplineEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	event := &models.DisciplineEvent{
		StudentName: req.StudentName,
		EventDate:   req.EventDate,
		Category:    req.Category,
		Description: req.Description,
		Sanction:    req.Sanction,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create discipline event")
	}
	return event, nil
}

// Update modifies an existing discipline event.
func (s *DisciplineService) Update(ctx context.Context, id string, req UpdateDisciplineRequest) (*models.DisciplineEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	event := &models.DisciplineEvent{
		ID:          id,
		StudentName: req.StudentName,
		EventDate:   req.EventDate,
		Category:    req.Category,
		Description: req.Description,
		Sanction:    req.Sanction,
	}
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update discipline event")
	}
	return event, nil
}

// Delete removes a discipline event.
func (s *DisciplineService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete discipline event")
	}
	return nil
}
