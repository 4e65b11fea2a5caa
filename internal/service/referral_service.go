package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

type referralRepository interface {
	List(ctx context.Context, filter models.ReferralFilter) ([]models.Referral, int, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*models.ReferralStats, error)
}

// ReferralService serves the referral history screens.
type ReferralService struct {
	repo   referralRepository
	logger *zap.Logger
}

// NewReferralService constructs the service.
func NewReferralService(repo referralRepository, logger *zap.Logger) *ReferralService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferralService{repo: repo, logger: logger}
}

// ReferralListRequest describes filters for the history list.
type ReferralListRequest struct {
	TeacherName string     `json:"teacher_name"`
	ClassKey    string     `json:"class_key"`
	Student     string     `json:"student"`
	Reason      string     `json:"reason"`
	DateFrom    *time.Time `json:"date_from"`
	DateTo      *time.Time `json:"date_to"`
	Page        int        `json:"page"`
	PageSize    int        `json:"page_size"`
	SortOrder   string     `json:"sort_order"`
}

// List returns referral history with pagination.
func (s *ReferralService) List(ctx context.Context, req ReferralListRequest) ([]models.Referral, *models.Pagination, error) {
	filter := models.ReferralFilter{
		TeacherName: req.TeacherName,
		ClassKey:    req.ClassKey,
		Student:     req.Student,
		Reason:      req.Reason,
		DateFrom:    req.DateFrom,
		DateTo:      req.DateTo,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortOrder:   req.SortOrder,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	referrals, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list referrals")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return referrals, pagination, nil
}

// Delete removes one referral record by explicit user action.
func (s *ReferralService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "referral not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete referral")
	}
	return nil
}

// Stats aggregates referral counts for the dashboard.
func (s *ReferralService) Stats(ctx context.Context) (*models.ReferralStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate referral stats")
	}
	return stats, nil
}
