package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type franchiseRepository interface {
	List(ctx context.Context, status models.FranchiseStatus) ([]models.Franchise, error)
	FindByID(ctx context.Context, id string) (*models.Franchise, error)
	UpdateStatus(ctx context.Context, id string, status models.FranchiseStatus) error
}

// FranchiseStatusRequest is the admin decision on a franchise application.
type FranchiseStatusRequest struct {
	Status models.FranchiseStatus `json:"status" validate:"required,franchise_status"`
}

// FranchiseService reviews franchise applications.
type FranchiseService struct {
	repo      franchiseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFranchiseService constructs a FranchiseService.
func NewFranchiseService(repo franchiseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *FranchiseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &FranchiseService{repo: repo, cache: cache, validator: validate, logger: logger}
	_ = svc.validator.RegisterValidation("franchise_status", func(fl validator.FieldLevel) bool {
		return models.FranchiseStatus(fl.Field().String()).Valid()
	})
	return svc
}

// List returns franchises, optionally only those in one status.
func (s *FranchiseService) List(ctx context.Context, status string) ([]models.Franchise, error) {
	filter := models.FranchiseStatus(strings.ToLower(strings.TrimSpace(status)))
	if filter != "" && !filter.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be one of pending, approved, rejected")
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list franchises")
	}
	return items, nil
}

// Get returns a franchise by id.
func (s *FranchiseService) Get(ctx context.Context, id string) (*models.Franchise, error) {
	franchise, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "franchise not found", "failed to load franchise")
	}
	return franchise, nil
}

// SetStatus records the review outcome. Any status may follow any other.
func (s *FranchiseService) SetStatus(ctx context.Context, id string, req FranchiseStatusRequest) (*models.Franchise, error) {
	req.Status = models.FranchiseStatus(strings.ToLower(string(req.Status)))
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "status must be one of pending, approved, rejected")
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, lookupError(err, "franchise not found", "failed to update franchise status")
	}
	s.logger.Info("franchise status changed", zap.String("franchise_id", id), zap.String("status", string(req.Status)))
	s.cache.InvalidateAdminStats(ctx)
	return s.Get(ctx, id)
}
