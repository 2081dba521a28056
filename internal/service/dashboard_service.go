package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/dto"
	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type adminStatsRepository interface {
	AdminStats(ctx context.Context) (*dto.AdminStats, error)
}

type notificationLister interface {
	List(ctx context.Context) ([]models.Notification, error)
}

type examinationLister interface {
	List(ctx context.Context) ([]models.Examination, error)
}

type studentJobLister interface {
	ListForStudent(ctx context.Context, studentID string, status models.JobStatus) ([]models.StudentJob, error)
}

// DashboardService composes the admin and student dashboard payloads.
type DashboardService struct {
	stats         adminStatsRepository
	students      studentReader
	enrollments   studentEnrollmentLister
	certificates  studentCertificateLister
	notifications notificationLister
	examinations  examinationLister
	jobs          studentJobLister
	cache         *CacheService
	metrics       *MetricsService
	cacheTTL      time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Stats         adminStatsRepository
	Students      studentReader
	Enrollments   studentEnrollmentLister
	Certificates  studentCertificateLister
	Notifications notificationLister
	Examinations  examinationLister
	Jobs          studentJobLister
	Cache         *CacheService
	Metrics       *MetricsService
	CacheTTL      time.Duration
	Logger        *zap.Logger
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		stats:         params.Stats,
		students:      params.Students,
		enrollments:   params.Enrollments,
		certificates:  params.Certificates,
		notifications: params.Notifications,
		examinations:  params.Examinations,
		jobs:          params.Jobs,
		cache:         params.Cache,
		metrics:       params.Metrics,
		cacheTTL:      ttl,
		logger:        logger,
		now:           time.Now,
	}
}

// AdminStats returns the admin counters and indicates cache utilisation.
func (s *DashboardService) AdminStats(ctx context.Context) (*dto.AdminStats, bool, error) {
	var cached dto.AdminStats
	hit, err := s.cache.Get(ctx, cacheKeyAdminStats, &cached)
	if err == nil && hit {
		return &cached, true, nil
	}

	start := time.Now()
	stats, err := s.stats.AdminStats(ctx)
	s.metrics.ObserveDBQuery("admin_stats", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to load dashboard statistics")
	}
	stats.GeneratedAt = s.now().UTC()

	if err := s.cache.Set(ctx, cacheKeyAdminStats, stats, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", cacheKeyAdminStats), zap.Error(err))
	}
	return stats, false, nil
}

// Student returns everything a student sees after signing in.
func (s *DashboardService) Student(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	resp := &dto.StudentDashboardResponse{Profile: *student}

	if resp.Enrollments, err = s.enrollments.ListByStudent(ctx, studentID); err != nil {
		return nil, appErrors.Internal(err, "failed to load enrollments")
	}
	if resp.Certificates, err = s.certificates.ListByStudent(ctx, studentID); err != nil {
		return nil, appErrors.Internal(err, "failed to load certificates")
	}
	if resp.Notifications, err = s.notifications.List(ctx); err != nil {
		return nil, appErrors.Internal(err, "failed to load notifications")
	}
	if resp.Examinations, err = s.examinations.List(ctx); err != nil {
		return nil, appErrors.Internal(err, "failed to load examinations")
	}
	if resp.Jobs, err = s.jobs.ListForStudent(ctx, studentID, models.JobStatusActive); err != nil {
		return nil, appErrors.Internal(err, "failed to load jobs")
	}
	return resp, nil
}
