package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/okulpanel/rehberlik-api/internal/models"
	appErrors "github.com/okulpanel/rehberlik-api/pkg/errors"
)

const rosterCacheKey = "roster:snapshot:v1"

type rosterRepository interface {
	ListTeachers(ctx context.Context) ([]models.RosterTeacher, error)
	ClassMap(ctx context.Context) ([]models.ClassMapping, error)
	ReplaceAll(ctx context.Context, teachers []models.RosterTeacher, mappings []models.ClassMapping) error
}

type rosterCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RosterService owns the imported teacher roster and its class mapping
// table. The snapshot used for intake validation is cached between requests;
// cache failures degrade to a direct store read.
type RosterService struct {
	repo      rosterRepository
	cache     rosterCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(repo rosterRepository, cache rosterCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &RosterService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// RosterImportTeacher is one row of a bulk roster import.
type RosterImportTeacher struct {
	Name     string `json:"name" validate:"required"`
	ClassKey string `json:"class_key" validate:"required"`
}

// RosterImportMapping is one display-to-key translation row.
type RosterImportMapping struct {
	Display string `json:"display" validate:"required"`
	Key     string `json:"key" validate:"required"`
}

// ImportRosterRequest replaces the whole roster in one call.
type ImportRosterRequest struct {
	Teachers []RosterImportTeacher `json:"teachers" validate:"required,min=1,dive"`
	ClassMap []RosterImportMapping `json:"class_map" validate:"dive"`
}

// Load returns the roster snapshot for request validation, preferring the
// cache.
func (s *RosterService) Load(ctx context.Context) (models.Roster, error) {
	var cached models.Roster
	if s.cache != nil {
		err := s.cache.Get(ctx, rosterCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("roster cache read failed", zap.Error(err))
		}
	}

	teachers, err := s.repo.ListTeachers(ctx)
	if err != nil {
		return models.Roster{}, err
	}
	mappings, err := s.repo.ClassMap(ctx)
	if err != nil {
		return models.Roster{}, err
	}

	roster := models.Roster{Teachers: teachers, ClassMap: mappings}
	if s.cache != nil {
		if err := s.cache.Set(ctx, rosterCacheKey, roster, s.cacheTTL); err != nil {
			s.logger.Warn("roster cache write failed", zap.Error(err))
		}
	}
	return roster, nil
}

// Import replaces the roster wholesale and invalidates the cached snapshot.
func (s *RosterService) Import(ctx context.Context, req ImportRosterRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}

	teachers := make([]models.RosterTeacher, len(req.Teachers))
	for i, row := range req.Teachers {
		teachers[i] = models.RosterTeacher{
			Name:            row.Name,
			NormalizedName:  NormalizeName(row.Name),
			AllowedClassKey: row.ClassKey,
		}
	}
	mappings := make([]models.ClassMapping, len(req.ClassMap))
	for i, row := range req.ClassMap {
		mappings[i] = models.ClassMapping{Display: row.Display, Key: row.Key}
	}

	if err := s.repo.ReplaceAll(ctx, teachers, mappings); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to import roster")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, rosterCacheKey); err != nil {
			s.logger.Warn("roster cache invalidation failed", zap.Error(err))
		}
	}

	return len(teachers), nil
}

// Teachers lists the imported roster entries.
func (s *RosterService) Teachers(ctx context.Context) ([]models.RosterTeacher, error) {
	teachers, err := s.repo.ListTeachers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roster teachers")
	}
	return teachers, nil
}

// ClassMap lists the display-to-key translation table.
func (s *RosterService) ClassMap(ctx context.Context) ([]models.ClassMapping, error) {
	mappings, err := s.repo.ClassMap(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class mappings")
	}
	return mappings, nil
}
