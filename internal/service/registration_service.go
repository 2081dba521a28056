package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type studentRegistrar interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	NextStudentNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, student *models.Student) error
}

type franchiseRegistrar interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, franchise *models.Franchise) error
}

// RegisterStudentRequest is the public student sign-up payload.
type RegisterStudentRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
	Address       string `json:"address"`
	Qualification string `json:"qualification"`
}

// RegisterFranchiseRequest is the public franchise application payload.
type RegisterFranchiseRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Qualification string `json:"qualification"`
	Address       string `json:"address"`
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

// RegistrationService creates student and franchise accounts.
type RegistrationService struct {
	students   studentRegistrar
	franchises franchiseRegistrar
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(students studentRegistrar, franchises franchiseRegistrar, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{students: students, franchises: franchises, validator: validate, logger: logger}
}

// FormatStudentID renders a student number as its public identifier.
func FormatStudentID(n int64) string {
	return models.StudentIDPrefix + strconv.FormatInt(n, 10)
}

// ParseStudentNumber extracts the numeric part of a student identifier.
func ParseStudentNumber(id string) (int64, error) {
	if !strings.HasPrefix(id, models.StudentIDPrefix) {
		return 0, fmt.Errorf("student id %q lacks %q prefix", id, models.StudentIDPrefix)
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(id, models.StudentIDPrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("student id %q: %w", id, err)
	}
	return n, nil
}

// RegisterStudent creates a student with the next student number and no enrollments.
func (s *RegistrationService) RegisterStudent(ctx context.Context, req RegisterStudentRequest) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "name, phone, username and password are required")
	}

	taken, err := s.students.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check username")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, msgUsernameTaken)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	number, err := s.students.NextStudentNumber(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to allocate student id")
	}

	student := &models.Student{
		StudentID:     FormatStudentID(number),
		Name:          req.Name,
		Phone:         req.Phone,
		Username:      req.Username,
		PasswordHash:  hash,
		Address:       strings.TrimSpace(req.Address),
		Qualification: strings.TrimSpace(req.Qualification),
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, storeError(err, "failed to register student")
	}

	s.logger.Info("student registered", zap.String("student_id", student.StudentID))
	return student, nil
}

// RegisterFranchise records a franchise application in pending state.
func (s *RegistrationService) RegisterFranchise(ctx context.Context, req RegisterFranchiseRequest) (*models.Franchise, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "name, phone, a valid email, username and password are required")
	}

	taken, err := s.franchises.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check username")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, msgUsernameTaken)
	}

	registered, err := s.franchises.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check email")
	}
	if registered {
		return nil, appErrors.Clone(appErrors.ErrConflict, msgEmailTaken)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	franchise := &models.Franchise{
		Name:          req.Name,
		Phone:         strings.TrimSpace(req.Phone),
		Email:         req.Email,
		Qualification: strings.TrimSpace(req.Qualification),
		Address:       strings.TrimSpace(req.Address),
		Username:      req.Username,
		PasswordHash:  hash,
		Status:        models.FranchiseStatusPending,
	}
	if err := s.franchises.Create(ctx, franchise); err != nil {
		return nil, storeError(err, "failed to register franchise")
	}

	s.logger.Info("franchise application received", zap.String("franchise_id", franchise.ID))
	return franchise, nil
}
