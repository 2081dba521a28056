package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type adminRepository interface {
	List(ctx context.Context) ([]models.Admin, error)
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)
	Create(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, admin *models.Admin) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// CreateAdminRequest represents payload for creating admins.
type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateAdminRequest changes an admin's username and optionally password.
type UpdateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// AdminService manages back-office accounts.
type AdminService struct {
	repo      adminRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(repo adminRepository, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{repo: repo, validator: validate, logger: logger}
}

// List returns all admins.
func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list admins")
	}
	return admins, nil
}

// Create adds an admin after checking the username is free.
func (s *AdminService) Create(ctx context.Context, req CreateAdminRequest) (*models.Admin, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "username and password (min 6 characters) are required")
	}
	if err := s.ensureUsernameFree(ctx, req.Username, ""); err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Username: req.Username, PasswordHash: hash}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, storeError(err, "failed to create admin")
	}
	s.logger.Info("admin created", zap.String("admin_id", admin.ID))
	return admin, nil
}

// Update edits another admin's credentials.
func (s *AdminService) Update(ctx context.Context, id string, req UpdateAdminRequest) (*models.Admin, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid admin payload")
	}
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "admin not found", "failed to load admin")
	}
	if err := s.ensureUsernameFree(ctx, req.Username, id); err != nil {
		return nil, err
	}
	admin.Username = req.Username
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, storeError(err, "failed to update admin")
	}
	return admin, nil
}

// Delete removes an admin. Nobody can delete their own account.
func (s *AdminService) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return appErrors.Clone(appErrors.ErrForbidden, "you cannot delete your own account")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "admin not found", "failed to delete admin")
	}
	return nil
}

// ChangePassword replaces the caller's password after checking the old one.
func (s *AdminService) ChangePassword(ctx context.Context, id string, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "old_password and new_password (min 6 characters) are required")
	}
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "admin not found", "failed to load admin")
	}
	if !passwordMatches(admin.PasswordHash, req.OldPassword) {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "current password is incorrect")
	}
	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return lookupError(err, "admin not found", "failed to update password")
	}
	return nil
}

func (s *AdminService) ensureUsernameFree(ctx context.Context, username, excludeID string) error {
	exists, err := s.repo.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check username uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, msgUsernameTaken)
	}
	return nil
}
