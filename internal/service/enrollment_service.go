package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	ListPending(ctx context.Context) ([]models.EnrollmentDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
	Approve(ctx context.Context, studentID, courseID string) error
	Delete(ctx context.Context, studentID, courseID string) error
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// EnrollmentService drives the request, approve and reject lifecycle of course enrollments.
type EnrollmentService struct {
	repo    enrollmentRepository
	courses courseReader
	logger  *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, courses courseReader, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, courses: courses, logger: logger}
}

// Enroll requests a seat in a course for the student. The new enrollment awaits approval.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
	studentID = strings.TrimSpace(studentID)
	courseID = strings.TrimSpace(courseID)
	if studentID == "" || courseID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course_id is required")
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, lookupError(err, "course not found", "failed to load course")
	}

	enrollment := &models.Enrollment{StudentID: studentID, CourseID: courseID}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, storeError(err, "failed to enroll in course")
	}
	return enrollment, nil
}

// ListPending returns every enrollment still awaiting approval.
func (s *EnrollmentService) ListPending(ctx context.Context) ([]models.EnrollmentDetail, error) {
	items, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load pending enrollments")
	}
	return items, nil
}

// ListByStudent returns a student's enrollments.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	items, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load enrollments")
	}
	return items, nil
}

// Approve marks the enrollment approved without touching its other flags.
func (s *EnrollmentService) Approve(ctx context.Context, studentID, courseID string) error {
	if studentID == "" || courseID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "student_id and course_id are required")
	}
	if err := s.repo.Approve(ctx, studentID, courseID); err != nil {
		return lookupError(err, "enrollment not found", "failed to approve enrollment")
	}
	s.logger.Info("enrollment approved", zap.String("student_id", studentID), zap.String("course_id", courseID))
	return nil
}

// Reject removes exactly the matching enrollment.
func (s *EnrollmentService) Reject(ctx context.Context, studentID, courseID string) error {
	if studentID == "" || courseID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "student_id and course_id are required")
	}
	if err := s.repo.Delete(ctx, studentID, courseID); err != nil {
		return lookupError(err, "enrollment not found", "failed to reject enrollment")
	}
	s.logger.Info("enrollment rejected", zap.String("student_id", studentID), zap.String("course_id", courseID))
	return nil
}
