package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/repository"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

type studentEnrollmentLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
}

// StudentService exposes student records to admins and to the students themselves.
type StudentService struct {
	repo         studentRepository
	enrollments  studentEnrollmentLister
	certificates studentCertificateLister
	cache        *CacheService
	logger       *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, enrollments studentEnrollmentLister, certificates studentCertificateLister, cache *CacheService, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, enrollments: enrollments, certificates: certificates, cache: cache, logger: logger}
}

// List returns students plus pagination data.
func (s *StudentService) List(ctx context.Context, filter models.ListFilter) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list students")
	}
	return students, paginationFor(filter, total), nil
}

// Profile returns a student with enrollments and certificates.
func (s *StudentService) Profile(ctx context.Context, id string) (*models.StudentProfile, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	enrollments, err := s.enrollments.ListByStudent(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load enrollments")
	}
	certificates, err := s.certificates.ListByStudent(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load certificates")
	}
	return &models.StudentProfile{Student: *student, Enrollments: enrollments, Certificates: certificates}, nil
}

// Delete removes a student with their enrollments and applications.
// Students holding certificates must have those revoked first.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, fk := repository.ForeignKeyViolation(err); fk {
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "student holds certificates; delete them first")
		}
		return lookupError(err, "student not found", "failed to delete student")
	}
	s.logger.Info("student deleted", zap.String("student_id", id))
	s.cache.InvalidateAdminStats(ctx)
	return nil
}
