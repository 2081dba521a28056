package service

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/repository"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type mockCertificateRepo struct {
	byCertID map[string]models.Certificate
	creates  int
}

func newMockCertificateRepo() *mockCertificateRepo {
	return &mockCertificateRepo{byCertID: map[string]models.Certificate{}}
}

func (m *mockCertificateRepo) Create(_ context.Context, cert *models.Certificate) error {
	m.creates++
	if _, exists := m.byCertID[cert.CertificateID]; exists {
		return &pq.Error{Code: "23505", Constraint: repository.ConstraintCertificateIDUnique}
	}
	cert.ID = "row-" + cert.CertificateID
	m.byCertID[cert.CertificateID] = *cert
	return nil
}

func (m *mockCertificateRepo) FindByCertificateID(_ context.Context, certificateID string) (*models.CertificateDetail, error) {
	if c, ok := m.byCertID[certificateID]; ok {
		return &models.CertificateDetail{Certificate: c, StudentName: "Asha", CourseTitle: "Tally"}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCertificateRepo) FindByID(_ context.Context, id string) (*models.CertificateDetail, error) {
	for _, c := range m.byCertID {
		if c.ID == id {
			return &models.CertificateDetail{Certificate: c}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockCertificateRepo) List(context.Context) ([]models.CertificateDetail, error) {
	var out []models.CertificateDetail
	for _, c := range m.byCertID {
		out = append(out, models.CertificateDetail{Certificate: c})
	}
	return out, nil
}

func (m *mockCertificateRepo) ListByStudent(_ context.Context, studentID string) ([]models.CertificateDetail, error) {
	var out []models.CertificateDetail
	catalog := testCourses().courses
	for _, c := range m.byCertID {
		if c.StudentID == studentID {
			out = append(out, models.CertificateDetail{Certificate: c, CourseTitle: catalog[c.CourseID].Title})
		}
	}
	return out, nil
}

func (m *mockCertificateRepo) Delete(_ context.Context, id string) error {
	for key, c := range m.byCertID {
		if c.ID == id {
			delete(m.byCertID, key)
			return nil
		}
	}
	return sql.ErrNoRows
}

type mockStudentReader struct {
	students map[string]models.Student
}

func (m *mockStudentReader) FindByID(_ context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func newTestCertificateService(repo *mockCertificateRepo) *CertificateService {
	students := &mockStudentReader{students: map[string]models.Student{"s1": {ID: "s1", Name: "Asha"}}}
	courses := &mockCourseReader{courses: map[string]models.Course{"c1": {ID: "c1", Title: "Tally", Duration: "3 months"}}}
	return NewCertificateService(repo, students, courses, nil, nil, zap.NewNop(), CertificateConfig{})
}

func TestCertificateServiceGeneratesFormattedID(t *testing.T) {
	svc := newTestCertificateService(newMockCertificateRepo())
	pattern := regexp.MustCompile(`^RITE-[A-Z0-9]{5}$`)

	for i := 0; i < 50; i++ {
		id, err := svc.generateID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
	}
}

func TestCertificateServiceIssueWithoutEnrollment(t *testing.T) {
	repo := newMockCertificateRepo()
	svc := newTestCertificateService(repo)

	cert, err := svc.Issue(context.Background(), IssueCertificateRequest{StudentID: "s1", CourseID: "c1", CompletionDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Regexp(t, `^RITE-[A-Z0-9]{5}$`, cert.CertificateID)
	assert.Equal(t, "3 months", cert.CourseDuration)
	assert.Equal(t, 2024, cert.CompletionDate.Year())
}

func TestCertificateServiceRegeneratesOnCollision(t *testing.T) {
	repo := newMockCertificateRepo()
	repo.byCertID["RITE-AAAAA"] = models.Certificate{ID: "existing", CertificateID: "RITE-AAAAA"}
	svc := newTestCertificateService(repo)
	ids := []string{"RITE-AAAAA", "RITE-BBBBB"}
	svc.randomID = func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	}

	cert, err := svc.Issue(context.Background(), IssueCertificateRequest{StudentID: "s1", CourseID: "c1", CompletionDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "RITE-BBBBB", cert.CertificateID)
	assert.Equal(t, 2, repo.creates)
}

func TestCertificateServiceGivesUpAfterMaxAttempts(t *testing.T) {
	repo := newMockCertificateRepo()
	repo.byCertID["RITE-AAAAA"] = models.Certificate{ID: "existing", CertificateID: "RITE-AAAAA"}
	svc := newTestCertificateService(repo)
	svc.randomID = func() (string, error) { return "RITE-AAAAA", nil }

	_, err := svc.Issue(context.Background(), IssueCertificateRequest{StudentID: "s1", CourseID: "c1", CompletionDate: "2024-03-01"})
	require.Error(t, err)
	assert.Equal(t, 409, appErrors.FromError(err).Status)
	assert.Equal(t, 5, repo.creates)
}

func TestCertificateServiceSuppliedDuplicateIDConflicts(t *testing.T) {
	repo := newMockCertificateRepo()
	repo.byCertID["RITE-AAAAA"] = models.Certificate{ID: "existing", CertificateID: "RITE-AAAAA"}
	svc := newTestCertificateService(repo)

	_, err := svc.Issue(context.Background(), IssueCertificateRequest{CertificateID: "RITE-AAAAA", StudentID: "s1", CourseID: "c1", CompletionDate: "2024-03-01"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, msgCertificateID, appErr.Message)
}

func TestCertificateServiceIssueUnknownStudent(t *testing.T) {
	svc := newTestCertificateService(newMockCertificateRepo())

	_, err := svc.Issue(context.Background(), IssueCertificateRequest{StudentID: "ghost", CourseID: "c1", CompletionDate: "2024-03-01"})
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	_, err = svc.Issue(context.Background(), IssueCertificateRequest{StudentID: "s1", CourseID: "c1", CompletionDate: "01/03/2024"})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestCertificateServiceVerifyIsExact(t *testing.T) {
	repo := newMockCertificateRepo()
	svc := newTestCertificateService(repo)
	cert, err := svc.Issue(context.Background(), IssueCertificateRequest{CertificateID: "RITE-AB12C", StudentID: "s1", CourseID: "c1", CompletionDate: "2024-03-01"})
	require.NoError(t, err)

	detail, hit, err := svc.Verify(context.Background(), cert.CertificateID)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "Asha", detail.StudentName)

	_, _, err = svc.Verify(context.Background(), "rite-ab12c")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "certificate not found", appErr.Message)
}

func TestCertificateServiceDelete(t *testing.T) {
	repo := newMockCertificateRepo()
	svc := newTestCertificateService(repo)
	cert, err := svc.Issue(context.Background(), IssueCertificateRequest{CertificateID: "RITE-ZZZZZ", StudentID: "s1", CourseID: "c1", CompletionDate: "2024-03-01"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), cert.ID))
	_, _, err = svc.Verify(context.Background(), "RITE-ZZZZZ")
	assert.Error(t, err)

	err = svc.Delete(context.Background(), cert.ID)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestCertificateServiceVerifyRecordsQueryTiming(t *testing.T) {
	metrics := NewMetricsService()
	svc := newTestCertificateService(newMockCertificateRepo()).WithMetrics(metrics)

	_, _, err := svc.Verify(context.Background(), "RITE-NONE1")
	require.Error(t, err)
	assert.Equal(t, uint64(1), metrics.Snapshot().DBQueryCount)
}
