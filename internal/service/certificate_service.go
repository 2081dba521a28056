package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/repository"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

const (
	certificateAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	certificateSuffixLen = 5
	dateLayout           = "2006-01-02"
)

type certificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error
	FindByCertificateID(ctx context.Context, certificateID string) (*models.CertificateDetail, error)
	FindByID(ctx context.Context, id string) (*models.CertificateDetail, error)
	List(ctx context.Context) ([]models.CertificateDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.CertificateDetail, error)
	Delete(ctx context.Context, id string) error
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// CertificateConfig tunes certificate identifier generation.
type CertificateConfig struct {
	IDPrefix    string
	MaxAttempts int
	CacheTTL    time.Duration
}

// IssueCertificateRequest is the admin payload for issuing a certificate.
// An empty CertificateID asks the service to generate one.
type IssueCertificateRequest struct {
	CertificateID  string `json:"certificate_id"`
	StudentID      string `json:"student_id" validate:"required"`
	CourseID       string `json:"course_id" validate:"required"`
	CourseDuration string `json:"course_duration"`
	CompletionDate string `json:"completion_date" validate:"required,datetime=2006-01-02"`
}

// CertificateService issues and verifies course completion certificates.
type CertificateService struct {
	repo      certificateRepository
	students  studentReader
	courses   courseReader
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       CertificateConfig
	metrics   *MetricsService
	randomID  func() (string, error)
}

// NewCertificateService constructs a CertificateService.
func NewCertificateService(repo certificateRepository, students studentReader, courses courseReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cfg CertificateConfig) *CertificateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "RITE"
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	svc := &CertificateService{repo: repo, students: students, courses: courses, cache: cache, validator: validate, logger: logger, cfg: cfg}
	svc.randomID = svc.generateID
	return svc
}

// WithMetrics times certificate lookups in the db_query_duration histogram.
func (s *CertificateService) WithMetrics(metrics *MetricsService) *CertificateService {
	s.metrics = metrics
	return s
}

// Issue records a certificate for a student and course. A supplied identifier
// is used verbatim; otherwise one is generated and regenerated on collision.
func (s *CertificateService) Issue(ctx context.Context, req IssueCertificateRequest) (*models.Certificate, error) {
	req.CertificateID = strings.TrimSpace(req.CertificateID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "student_id, course_id and completion_date (YYYY-MM-DD) are required")
	}
	completedOn, err := time.Parse(dateLayout, req.CompletionDate)
	if err != nil {
		return nil, appErrors.Validation(err, "completion_date must be YYYY-MM-DD")
	}
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, lookupError(err, "course not found", "failed to load course")
	}

	duration := strings.TrimSpace(req.CourseDuration)
	if duration == "" {
		duration = course.Duration
	}
	cert := &models.Certificate{
		StudentID:      req.StudentID,
		CourseID:       req.CourseID,
		CourseDuration: duration,
		CompletionDate: completedOn,
	}

	if req.CertificateID != "" {
		cert.CertificateID = req.CertificateID
		if err := s.repo.Create(ctx, cert); err != nil {
			return nil, storeError(err, "failed to issue certificate")
		}
		s.afterIssue(ctx, cert)
		return cert, nil
	}

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		id, err := s.randomID()
		if err != nil {
			return nil, appErrors.Internal(err, "failed to generate certificate id")
		}
		cert.CertificateID = id
		cert.ID = ""
		err = s.repo.Create(ctx, cert)
		if err == nil {
			s.afterIssue(ctx, cert)
			return cert, nil
		}
		if constraint, dup := repository.UniqueViolation(err); dup && constraint == repository.ConstraintCertificateIDUnique {
			s.logger.Warn("certificate id collision, regenerating", zap.String("certificate_id", id), zap.Int("attempt", attempt))
			continue
		}
		return nil, storeError(err, "failed to issue certificate")
	}
	return nil, appErrors.Clone(appErrors.ErrConflict, "could not allocate a unique certificate id, please retry")
}

// Verify looks up a certificate by its exact, case-sensitive identifier.
func (s *CertificateService) Verify(ctx context.Context, certificateID string) (*models.CertificateDetail, bool, error) {
	certificateID = strings.TrimSpace(certificateID)
	if certificateID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "certificate id is required")
	}

	key := certificateCacheKey(certificateID)
	var cached models.CertificateDetail
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	start := time.Now()
	detail, err := s.repo.FindByCertificateID(ctx, certificateID)
	s.metrics.ObserveDBQuery("certificate_verify", time.Since(start))
	if err != nil {
		return nil, false, lookupError(err, "certificate not found", "failed to verify certificate")
	}
	_ = s.cache.Set(ctx, key, detail, s.cfg.CacheTTL)
	return detail, false, nil
}

// List returns every issued certificate.
func (s *CertificateService) List(ctx context.Context) ([]models.CertificateDetail, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load certificates")
	}
	return items, nil
}

// ListByStudent returns the certificates a student holds.
func (s *CertificateService) ListByStudent(ctx context.Context, studentID string) ([]models.CertificateDetail, error) {
	items, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load certificates")
	}
	return items, nil
}

// Delete revokes a certificate and drops its cached verification.
func (s *CertificateService) Delete(ctx context.Context, id string) error {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "certificate not found", "failed to load certificate")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "certificate not found", "failed to delete certificate")
	}
	s.cache.InvalidateCertificate(ctx, detail.CertificateID)
	return nil
}

func (s *CertificateService) afterIssue(ctx context.Context, cert *models.Certificate) {
	s.logger.Info("certificate issued", zap.String("certificate_id", cert.CertificateID), zap.String("student_id", cert.StudentID))
	s.cache.InvalidateAdminStats(ctx)
}

func (s *CertificateService) generateID() (string, error) {
	suffix, err := randomString(certificateAlphabet, certificateSuffixLen)
	if err != nil {
		return "", err
	}
	return s.cfg.IDPrefix + "-" + suffix, nil
}

func randomString(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf), nil
}
