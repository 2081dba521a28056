package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/repository"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type enrollmentKey struct{ student, course string }

type mockEnrollmentRepo struct {
	rows map[enrollmentKey]models.Enrollment
}

func newMockEnrollmentRepo(rows ...models.Enrollment) *mockEnrollmentRepo {
	m := &mockEnrollmentRepo{rows: map[enrollmentKey]models.Enrollment{}}
	for _, r := range rows {
		m.rows[enrollmentKey{r.StudentID, r.CourseID}] = r
	}
	return m
}

func (m *mockEnrollmentRepo) Create(_ context.Context, e *models.Enrollment) error {
	key := enrollmentKey{e.StudentID, e.CourseID}
	if _, exists := m.rows[key]; exists {
		return &pq.Error{Code: "23505", Constraint: repository.ConstraintEnrollmentUnique}
	}
	e.ID = "e-" + e.CourseID
	e.JoinedAt = time.Now()
	m.rows[key] = *e
	return nil
}

func (m *mockEnrollmentRepo) ListPending(context.Context) ([]models.EnrollmentDetail, error) {
	var out []models.EnrollmentDetail
	for _, e := range m.rows {
		if !e.Approved {
			out = append(out, models.EnrollmentDetail{Enrollment: e})
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	var out []models.EnrollmentDetail
	for _, e := range m.rows {
		if e.StudentID == studentID {
			out = append(out, models.EnrollmentDetail{Enrollment: e})
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepo) Approve(_ context.Context, studentID, courseID string) error {
	key := enrollmentKey{studentID, courseID}
	e, ok := m.rows[key]
	if !ok {
		return sql.ErrNoRows
	}
	e.Approved = true
	m.rows[key] = e
	return nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, studentID, courseID string) error {
	key := enrollmentKey{studentID, courseID}
	if _, ok := m.rows[key]; !ok {
		return sql.ErrNoRows
	}
	delete(m.rows, key)
	return nil
}

type mockCourseReader struct {
	courses map[string]models.Course
}

func (m *mockCourseReader) FindByID(_ context.Context, id string) (*models.Course, error) {
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func testCourses() *mockCourseReader {
	return &mockCourseReader{courses: map[string]models.Course{
		"c1": {ID: "c1", Title: "Tally"},
		"c2": {ID: "c2", Title: "Excel"},
	}}
}

func TestEnrollmentServiceEnrollStartsPending(t *testing.T) {
	repo := newMockEnrollmentRepo()
	svc := NewEnrollmentService(repo, testCourses(), zap.NewNop())

	e, err := svc.Enroll(context.Background(), "s1", "c1")
	require.NoError(t, err)
	assert.False(t, e.Approved)
	assert.False(t, e.Paid)
	assert.False(t, e.Completed)

	_, err = svc.Enroll(context.Background(), "s1", "c1")
	require.Error(t, err)
	assert.Equal(t, msgAlreadyEnrolled, appErrors.FromError(err).Message)

	_, err = svc.Enroll(context.Background(), "s1", "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceApprovePreservesOtherFields(t *testing.T) {
	joined := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := newMockEnrollmentRepo(models.Enrollment{ID: "e1", StudentID: "s1", CourseID: "c1", JoinedAt: joined, Paid: true, Completed: false})
	svc := NewEnrollmentService(repo, testCourses(), zap.NewNop())

	require.NoError(t, svc.Approve(context.Background(), "s1", "c1"))

	got := repo.rows[enrollmentKey{"s1", "c1"}]
	assert.True(t, got.Approved)
	assert.True(t, got.Paid)
	assert.False(t, got.Completed)
	assert.Equal(t, joined, got.JoinedAt)
	assert.Equal(t, "e1", got.ID)
}

func TestEnrollmentServiceRejectRemovesExactlyOne(t *testing.T) {
	repo := newMockEnrollmentRepo(
		models.Enrollment{StudentID: "s1", CourseID: "c1"},
		models.Enrollment{StudentID: "s1", CourseID: "c2"},
		models.Enrollment{StudentID: "s2", CourseID: "c1"},
	)
	svc := NewEnrollmentService(repo, testCourses(), zap.NewNop())

	require.NoError(t, svc.Reject(context.Background(), "s1", "c1"))

	assert.Len(t, repo.rows, 2)
	assert.Contains(t, repo.rows, enrollmentKey{"s1", "c2"})
	assert.Contains(t, repo.rows, enrollmentKey{"s2", "c1"})
}

func TestEnrollmentServiceApproveMissing(t *testing.T) {
	svc := NewEnrollmentService(newMockEnrollmentRepo(), testCourses(), zap.NewNop())

	err := svc.Approve(context.Background(), "s1", "c1")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	err = svc.Reject(context.Background(), "s1", "c1")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
