package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

type riskRepository interface {
	List(ctx context.Context, filter models.RiskFilter) ([]models.RiskEntry, int, error)
	Create(ctx context.Context, entry *models.RiskEntry) error
	Update(ctx context.Context, entry *models.RiskEntry) error
	Delete(ctx context.Context, id string) error
}

// RiskService handles risk-tracking entries.
type RiskService struct {
	repo      riskRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRiskService constructs the service.
func NewRiskService(repo riskRepository, validate *validator.Validate, logger *zap.Logger) *RiskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RiskService{repo: repo, validator: validate, logger: logger}
}

// RiskListRequest describes list filters.
type RiskListRequest struct {
	Student   string `json:"student"`
	Level     string `json:"level"`
	Status    string `json:"status"`
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	SortOrder string `json:"sort_order"`
}

// CreateRiskRequest describes the create payload.
type CreateRiskRequest struct {
	StudentName string `json:"student_name" validate:"required"`
	Level       string `json:"level" validate:"required,oneof=low medium high"`
	Category    string `json:"category" validate:"required"`
	Note        string `json:"note" validate:"required"`
}

// UpdateRiskRequest describes the update payload.
type UpdateRiskRequest struct {
	StudentName string `json:"student_name" validate:"required"`
	Level       string `json:"level" validate:"required,oneof=low medium high"`
	Category    string `json:"category" validate:"required"`
	Note        string `json:"note" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=open closed"`
}

// List returns risk entries with pagination.
func (s *RiskService) List(ctx context.Context, req RiskListRequest) ([]models.RiskEntry, *models.Pagination, error) {
	filter := models.RiskFilter{
		Student:   req.Student,
		Level:     req.Level,
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
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list risk entries")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return entries, pagination, nil
}

// Create opens a risk entry.
func (s *RiskService) Create(ctx context.Context, req CreateRiskRequest) (*models.RiskEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	entry := &models.RiskEntry{
		StudentName: req.StudentName,
		Level:       models.RiskLevel(req.Level),
		Category:    req.Category,
		Note:        req.Note,
		Status:      models.RiskOpen,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create risk entry")
	}
	return entry, nil
}

// Update modifies an existing risk entry, including closing it.
func (s *RiskService) Update(ctx context.Context, id string, req UpdateRiskRequest) (*models.RiskEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	entry := &models.RiskEntry{
		ID:          id,
		StudentName: req.StudentName,
		Level:       models.RiskLevel(req.Level),
		Category:    req.Category,
		Note:        req.Note,
		Status:      models.RiskStatus(req.Status),
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update risk entry")
	}
	return entry, nil
}

// Delete removes a risk entry.
func (s *RiskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete risk entry")
	}
	return nil
}
