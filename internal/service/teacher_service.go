package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type teacherRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

type teacherCourseLister interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error)
}

type teacherEnrollmentLister interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.EnrollmentDetail, error)
}

// CreateTeacherRequest represents payload for creating teachers.
type CreateTeacherRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,max=150"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// UpdateTeacherRequest represents payload for updating teachers. An empty
// password keeps the current one.
type UpdateTeacherRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"omitempty,min=6"`
	FullName string `json:"full_name" validate:"required,max=150"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// TeacherService orchestrates teacher operations.
type TeacherService struct {
	repo        teacherRepository
	courses     teacherCourseLister
	enrollments teacherEnrollmentLister
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, courses teacherCourseLister, enrollments teacherEnrollmentLister, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, courses: courses, enrollments: enrollments, validator: validate, logger: logger}
}

// List returns teachers plus pagination data.
func (s *TeacherService) List(ctx context.Context, filter models.ListFilter) ([]models.Teacher, *models.Pagination, error) {
	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list teachers")
	}
	return teachers, paginationFor(filter, total), nil
}

// Get returns a teacher by id.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "teacher not found", "failed to load teacher")
	}
	return teacher, nil
}

// Create registers a new teacher account.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid teacher payload")
	}
	if err := s.ensureUsernameFree(ctx, req.Username, ""); err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	teacher := &models.Teacher{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, storeError(err, "failed to create teacher")
	}
	return teacher, nil
}

// Update modifies an existing teacher.
func (s *TeacherService) Update(ctx context.Context, id string, req UpdateTeacherRequest) (*models.Teacher, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid teacher payload")
	}

	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "teacher not found", "failed to load teacher")
	}
	if err := s.ensureUsernameFree(ctx, req.Username, id); err != nil {
		return nil, err
	}

	teacher.Username = req.Username
	teacher.FullName = req.FullName
	teacher.Phone = strings.TrimSpace(req.Phone)
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		teacher.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, storeError(err, "failed to update teacher")
	}
	return teacher, nil
}

// Delete removes a teacher; their courses stay in the catalog unassigned.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "teacher not found", "failed to delete teacher")
	}
	return nil
}

// Dashboard lists the teacher's courses and the students enrolled in them.
func (s *TeacherService) Dashboard(ctx context.Context, teacherID string) (*models.TeacherDashboard, error) {
	teacher, err := s.Get(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load courses")
	}
	students, err := s.enrollments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load enrolled students")
	}
	return &models.TeacherDashboard{Teacher: *teacher, Courses: courses, Students: students}, nil
}

func (s *TeacherService) ensureUsernameFree(ctx context.Context, username, excludeID string) error {
	exists, err := s.repo.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check username uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, msgUsernameTaken)
	}
	return nil
}

func paginationFor(filter models.ListFilter, total int) *models.Pagination {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
