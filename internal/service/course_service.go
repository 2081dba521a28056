package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/repository"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	ExistsByTitle(ctx context.Context, title, excludeID string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// CourseRequest represents payload for creating or updating courses.
type CourseRequest struct {
	Title              string  `json:"title" validate:"required,max=200"`
	Description        string  `json:"description"`
	Duration           string  `json:"duration" validate:"required,max=100"`
	Fee                float64 `json:"fee" validate:"gte=0"`
	Paid               bool    `json:"paid"`
	CertificationGiven bool    `json:"certification_given"`
	TeacherID          *string `json:"teacher_id"`
}

// CourseService orchestrates the course catalog.
type CourseService struct {
	repo      courseRepository
	teachers  teacherFinder
	cache     *CacheService
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, teachers teacherFinder, cache *CacheService, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, teachers: teachers, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// List returns the public catalog and whether it came from cache.
func (s *CourseService) List(ctx context.Context) ([]models.Course, bool, error) {
	var cached []models.Course
	if hit, err := s.cache.Get(ctx, cacheKeyPublicCourses, &cached); err == nil && hit {
		return cached, true, nil
	}
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load courses")
	}
	if err := s.cache.Set(ctx, cacheKeyPublicCourses, courses, s.cacheTTL); err != nil {
		s.logger.Debug("course cache set skipped", zap.Error(err))
	}
	return courses, false, nil
}

// ListByTeacher returns courses owned by a teacher.
func (s *CourseService) ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error) {
	courses, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load courses")
	}
	return courses, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "course not found", "failed to load course")
	}
	return course, nil
}

// Create adds a course to the catalog.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	if err := s.validate(ctx, &req, ""); err != nil {
		return nil, err
	}
	course := &models.Course{}
	applyCourseRequest(course, req)
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, storeError(err, "failed to create course")
	}
	s.invalidate(ctx)
	return course, nil
}

// Update replaces a course's editable fields.
func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "course not found", "failed to load course")
	}
	if err := s.validate(ctx, &req, id); err != nil {
		return nil, err
	}
	applyCourseRequest(course, req)
	if err := s.repo.Update(ctx, course); err != nil {
		return nil, storeError(err, "failed to update course")
	}
	s.invalidate(ctx)
	return course, nil
}

// Delete removes a course. Courses with issued certificates cannot be removed.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, fk := repository.ForeignKeyViolation(err); fk {
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "course has issued certificates and cannot be deleted")
		}
		return lookupError(err, "course not found", "failed to delete course")
	}
	s.invalidate(ctx)
	return nil
}

func (s *CourseService) validate(ctx context.Context, req *CourseRequest, excludeID string) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Duration = strings.TrimSpace(req.Duration)
	req.Description = strings.TrimSpace(req.Description)
	req.TeacherID = normalizeOptional(req.TeacherID)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "title and duration are required and fee cannot be negative")
	}
	exists, err := s.repo.ExistsByTitle(ctx, req.Title, excludeID)
	if err != nil {
		return appErrors.Internal(err, "failed to check course title")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, msgCourseTitle)
	}
	if req.TeacherID != nil {
		if _, err := s.teachers.FindByID(ctx, *req.TeacherID); err != nil {
			return lookupError(err, "teacher not found", "failed to load teacher")
		}
	}
	return nil
}

func (s *CourseService) invalidate(ctx context.Context) {
	s.cache.InvalidateCatalog(ctx)
}

func applyCourseRequest(course *models.Course, req CourseRequest) {
	course.Title = req.Title
	course.Description = req.Description
	course.Duration = req.Duration
	course.Fee = req.Fee
	course.Paid = req.Paid
	course.CertificationGiven = req.CertificationGiven
	course.TeacherID = req.TeacherID
}
