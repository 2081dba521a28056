package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type jobRepository interface {
	List(ctx context.Context, status models.JobStatus) ([]models.Job, error)
	ListForStudent(ctx context.Context, studentID string, status models.JobStatus) ([]models.StudentJob, error)
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	UpdateStatus(ctx context.Context, id string, status models.JobStatus) error
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, application *models.JobApplication) (bool, error)
	Applicants(ctx context.Context, jobID string) ([]models.Applicant, error)
}

type courseTitleLister interface {
	ListByTitles(ctx context.Context, titles []string) ([]models.Course, error)
}

type studentCertificateLister interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.CertificateDetail, error)
}

// StringList decodes either a JSON array of strings or a single
// comma-separated string. Entries are trimmed and empties dropped.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		var raw *string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw != nil {
			items = strings.Split(*raw, ",")
		}
	}
	*l = compactList(items)
	return nil
}

func compactList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JobRequest is the admin payload for creating or editing a job.
type JobRequest struct {
	Title                 string     `json:"title" validate:"required,max=200"`
	Description           string     `json:"description" validate:"required"`
	QualificationRequired *string    `json:"qualification_required" validate:"omitempty,max=200"`
	CertificatesRequired  StringList `json:"certificates_required"`
}

// JobStatusRequest changes a job's lifecycle state.
type JobStatusRequest struct {
	Status models.JobStatus `json:"status" validate:"required,job_status"`
}

// JobService manages job postings and student applications.
type JobService struct {
	repo         jobRepository
	courses      courseTitleLister
	students     studentReader
	certificates studentCertificateLister
	cache        *CacheService
	validator    *validator.Validate
	logger       *zap.Logger
	metrics      *MetricsService
	now          func() time.Time
}

// NewJobService constructs a JobService.
func NewJobService(repo jobRepository, courses courseTitleLister, students studentReader, certificates studentCertificateLister, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *JobService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &JobService{
		repo:         repo,
		courses:      courses,
		students:     students,
		certificates: certificates,
		cache:        cache,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
	_ = svc.validator.RegisterValidation("job_status", validateJobStatus)
	return svc
}

// WithMetrics times application inserts in the db_query_duration histogram.
func (s *JobService) WithMetrics(metrics *MetricsService) *JobService {
	s.metrics = metrics
	return s
}

func validateJobStatus(fl validator.FieldLevel) bool {
	return models.JobStatus(fl.Field().String()).Valid()
}

// List returns jobs, optionally narrowed to one status.
func (s *JobService) List(ctx context.Context, status string) ([]models.Job, error) {
	filter, err := parseJobStatusFilter(status)
	if err != nil {
		return nil, err
	}
	jobs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load jobs")
	}
	return jobs, nil
}

// ListForStudent returns active jobs flagged with whether the student applied.
func (s *JobService) ListForStudent(ctx context.Context, studentID string) ([]models.StudentJob, error) {
	jobs, err := s.repo.ListForStudent(ctx, studentID, models.JobStatusActive)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load jobs")
	}
	return jobs, nil
}

// Get returns a job together with its applicants.
func (s *JobService) Get(ctx context.Context, id string) (*models.JobDetail, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "job not found", "failed to load job")
	}
	applicants, err := s.repo.Applicants(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load applicants")
	}
	return &models.JobDetail{Job: *job, Applicants: applicants}, nil
}

// Create posts a new active job.
func (s *JobService) Create(ctx context.Context, req JobRequest) (*models.Job, error) {
	if err := s.validateRequest(ctx, &req); err != nil {
		return nil, err
	}
	job := &models.Job{
		Title:                 req.Title,
		Description:           req.Description,
		QualificationRequired: normalizeOptional(req.QualificationRequired),
		CertificatesRequired:  pq.StringArray(req.CertificatesRequired),
		Status:                models.JobStatusActive,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, storeError(err, "failed to create job")
	}
	s.invalidate(ctx)
	return job, nil
}

// Update edits a job's content. Status is changed through ChangeStatus.
func (s *JobService) Update(ctx context.Context, id string, req JobRequest) (*models.Job, error) {
	if err := s.validateRequest(ctx, &req); err != nil {
		return nil, err
	}
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "job not found", "failed to load job")
	}
	job.Title = req.Title
	job.Description = req.Description
	job.QualificationRequired = normalizeOptional(req.QualificationRequired)
	job.CertificatesRequired = pq.StringArray(req.CertificatesRequired)
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, lookupError(err, "job not found", "failed to update job")
	}
	return job, nil
}

// ChangeStatus moves a job between active, completed and closed.
func (s *JobService) ChangeStatus(ctx context.Context, id string, req JobStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "status must be one of active, completed, closed")
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return lookupError(err, "job not found", "failed to update job status")
	}
	s.logger.Info("job status changed", zap.String("job_id", id), zap.String("status", string(req.Status)))
	s.invalidate(ctx)
	return nil
}

// Delete removes a job and its applications.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "job not found", "failed to delete job")
	}
	s.invalidate(ctx)
	return nil
}

// Apply records a student's application. Only active jobs accept applications
// and eligibility is not enforced.
func (s *JobService) Apply(ctx context.Context, jobID, studentID string) (*models.JobApplication, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, lookupError(err, "job not found", "failed to load job")
	}
	if job.Status != models.JobStatusActive {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "This job is no longer accepting applications.")
	}
	application := &models.JobApplication{JobID: jobID, StudentID: studentID, AppliedAt: s.now().UTC()}
	start := time.Now()
	inserted, err := s.repo.Apply(ctx, application)
	s.metrics.ObserveDBQuery("job_apply", time.Since(start))
	if err != nil {
		return nil, storeError(err, "failed to submit application")
	}
	if !inserted {
		return nil, appErrors.Clone(appErrors.ErrConflict, msgAlreadyApplied)
	}
	return application, nil
}

// Applicants lists the students who applied for a job.
func (s *JobService) Applicants(ctx context.Context, jobID string) ([]models.Applicant, error) {
	if _, err := s.repo.FindByID(ctx, jobID); err != nil {
		return nil, lookupError(err, "job not found", "failed to load job")
	}
	applicants, err := s.repo.Applicants(ctx, jobID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load applicants")
	}
	return applicants, nil
}

// Eligibility compares a job's requirements with what the student holds.
// The report is for display only.
func (s *JobService) Eligibility(ctx context.Context, jobID, studentID string) (*models.EligibilityReport, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, lookupError(err, "job not found", "failed to load job")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	held, err := s.certificates.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load certificates")
	}

	owned := make(map[string]struct{}, len(held))
	for _, cert := range held {
		owned[titleKey(cert.CourseTitle)] = struct{}{}
	}

	report := &models.EligibilityReport{
		JobID:                jobID,
		MissingCertificates:  []string{},
		StudentQualification: student.Qualification,
	}
	if job.QualificationRequired != nil {
		report.QualificationRequired = *job.QualificationRequired
	}
	for _, title := range job.CertificatesRequired {
		if _, ok := owned[titleKey(title)]; !ok {
			report.MissingCertificates = append(report.MissingCertificates, title)
		}
	}
	report.Eligible = len(report.MissingCertificates) == 0
	return report, nil
}

func (s *JobService) validateRequest(ctx context.Context, req *JobRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "title and description are required")
	}
	titles, err := s.canonicalTitles(ctx, req.CertificatesRequired)
	if err != nil {
		return err
	}
	req.CertificatesRequired = titles
	return nil
}

// canonicalTitles dedupes required certificate names case-insensitively and
// rewrites names that match a catalog course to the course's own spelling.
// Names with no matching course are kept as typed.
func (s *JobService) canonicalTitles(ctx context.Context, names []string) (StringList, error) {
	names = compactList(names)
	if len(names) == 0 {
		return StringList{}, nil
	}
	catalog := map[string]string{}
	if s.courses != nil {
		courses, err := s.courses.ListByTitles(ctx, names)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to load courses")
		}
		for _, course := range courses {
			catalog[titleKey(course.Title)] = course.Title
		}
	}

	out := make(StringList, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		key := titleKey(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if canonical, ok := catalog[key]; ok {
			name = canonical
		}
		out = append(out, name)
	}
	return out, nil
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func (s *JobService) invalidate(ctx context.Context) {
	s.cache.InvalidateAdminStats(ctx)
}

func parseJobStatusFilter(raw string) (models.JobStatus, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return "", nil
	}
	status := models.JobStatus(raw)
	if !status.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "status must be one of active, completed, closed")
	}
	return status, nil
}
