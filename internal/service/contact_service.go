package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

type contactRepository interface {
	List(ctx context.Context, filter models.ContactFilter) ([]models.ParentContact, int, error)
	Create(ctx context.Context, contact *models.ParentContact) error
	Update(ctx context.Context, contact *models.ParentContact) error
	Delete(ctx context.Context, id string) error
}

// ContactService handles parent contact logs.
type ContactService struct {
	repo      contactRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs the service.
func NewContactService(repo contactRepository, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, validator: validate, logger: logger}
}

// ContactListRequest describes list filters.
type ContactListRequest struct {
	Student   string     `json:"student"`
	Channel   string     `json:"channel"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
	SortOrder string     `json:"sort_order"`
}

// CreateContactRequest describes the create payload.
type CreateContactRequest struct {
	StudentName string    `json:"student_name" validate:"required"`
	ContactDate time.Time `json:"contact_date" validate:"required"`
	Channel     string    `json:"channel" validate:"required,oneof=phone face_to_face message"`
	Summary     string    `json:"summary" validate:"required"`
}

// UpdateContactRequest describes the update payload.
type UpdateContactRequest struct {
	StudentName string    `json:"student_name" validate:"required"`
	ContactDate time.Time `json:"contact_date" validate:"required"`
	Channel     string    `json:"channel" validate:"required,oneof=phone face_to_face message"`
	Summary     string    `json:"summary" validate:"required"`
}

// List returns parent contacts with pagination.
func (s *ContactService) List(ctx context.Context, req ContactListRequest) ([]models.ParentContact, *models.Pagination, error) {
	filter := models.ContactFilter{
		Student:   req.Student,
		Channel:   req.Channel,
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
	contacts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parent contacts")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return contacts, pagination, nil
}

// Create logs a parent contact.
func (s *ContactService) Create(ctx context.Context, req CreateContactRequest) (*models.ParentContact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	contact := &models.ParentContact{
		StudentName: req.StudentName,
		ContactDate: req.ContactDate,
		Channel:     models.ContactChannel(req.Channel),
		Summary:     req.Summary,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create parent contact")
	}
	return contact, nil
}

// Update modifies an existing parent contact.
func (s *ContactService) Update(ctx context.Context, id string, req UpdateContactRequest) (*models.ParentContact, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	contact := &models.ParentContact{
		ID:          id,
		StudentName: req.StudentName,
		ContactDate: req.ContactDate,
		Channel:     models.ContactChannel(req.Channel),
		Summary:     req.Summary,
	}
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update parent contact")
	}
	return contact, nil
}

// Delete removes a parent contact.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete parent contact")
	}
	return nil
}
