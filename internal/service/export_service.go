package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
	"github.com/noah-isme/rite-edu-api/pkg/export"
)

type applicantSource interface {
	FindByID(ctx context.Context, id string) (*models.Job, error)
	Applicants(ctx context.Context, jobID string) ([]models.Applicant, error)
}

type rosterSource interface {
	ListAll(ctx context.Context) ([]models.Student, error)
}

// ExportResult is a rendered document ready to stream to the client.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders admin downloads in CSV or PDF.
type ExportService struct {
	jobs      applicantSource
	students  rosterSource
	renderers map[string]export.Renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Each renderer is keyed by its extension.
func NewExportService(jobs applicantSource, students rosterSource, logger *zap.Logger, renderers ...export.Renderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	byFormat := make(map[string]export.Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Extension()] = r
	}
	return &ExportService{jobs: jobs, students: students, renderers: byFormat, logger: logger, now: time.Now}
}

// JobApplicants renders the applicant list of one job.
func (s *ExportService) JobApplicants(ctx context.Context, jobID, format string) (*ExportResult, error) {
	renderer, err := s.renderer(format)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, lookupError(err, "job not found", "failed to load job")
	}
	applicants, err := s.jobs.Applicants(ctx, jobID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load applicants")
	}

	data := export.Dataset{
		Title:   "Applicants: " + job.Title,
		Headers: []string{"Student ID", "Name", "Phone", "Qualification", "Applied At"},
		Rows:    make([]map[string]string, 0, len(applicants)),
	}
	for _, a := range applicants {
		data.Rows = append(data.Rows, map[string]string{
			"Student ID":    a.StudentNumber,
			"Name":          a.Name,
			"Phone":         a.Phone,
			"Qualification": a.Qualification,
			"Applied At":    a.AppliedAt.UTC().Format(time.RFC3339),
		})
	}
	return s.render(renderer, data, "applicants-"+sanitizeFilename(job.Title))
}

// StudentRoster renders every registered student.
func (s *ExportService) StudentRoster(ctx context.Context, format string) (*ExportResult, error) {
	renderer, err := s.renderer(format)
	if err != nil {
		return nil, err
	}
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load students")
	}

	data := export.Dataset{
		Title:   "Student roster",
		Headers: []string{"Student ID", "Name", "Username", "Phone", "Qualification", "Registered"},
		Rows:    make([]map[string]string, 0, len(students)),
	}
	for _, st := range students {
		data.Rows = append(data.Rows, map[string]string{
			"Student ID":    st.StudentID,
			"Name":          st.Name,
			"Username":      st.Username,
			"Phone":         st.Phone,
			"Qualification": st.Qualification,
			"Registered":    st.CreatedAt.UTC().Format(dateLayout),
		})
	}
	return s.render(renderer, data, "students")
}

func (s *ExportService) renderer(format string) (export.Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	return r, nil
}

func (s *ExportService) render(renderer export.Renderer, data export.Dataset, base string) (*ExportResult, error) {
	body, err := renderer.Render(data)
	if err != nil {
		s.logger.Error("export render failed", zap.String("document", base), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to render export")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("%s-%s.%s", base, s.now().UTC().Format("20060102"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func sanitizeFilename(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "export"
	}
	return b.String()
}
