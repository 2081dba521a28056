package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type mockCourseRepo struct {
	items     map[string]models.Course
	listCalls int
	deleteErr error
}

func (m *mockCourseRepo) List(context.Context) ([]models.Course, error) {
	m.listCalls++
	var out []models.Course
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCourseRepo) ListByTeacher(_ context.Context, teacherID string) ([]models.Course, error) {
	var out []models.Course
	for _, c := range m.items {
		if c.TeacherID != nil && *c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) FindByID(_ context.Context, id string) (*models.Course, error) {
	if c, ok := m.items[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) ExistsByTitle(_ context.Context, title, excludeID string) (bool, error) {
	for id, c := range m.items {
		if strings.EqualFold(c.Title, title) && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCourseRepo) Create(_ context.Context, course *models.Course) error {
	course.ID = "c-" + strings.ToLower(course.Title)
	m.items[course.ID] = *course
	return nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *models.Course) error {
	m.items[course.ID] = *course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func newTestCourseService(repo *mockCourseRepo) *CourseService {
	teachers := &mockTeacherRepo{items: map[string]*models.Teacher{"t1": {ID: "t1"}}}
	cache := NewCacheService(newMemCacheRepo(), nil, time.Minute, zap.NewNop(), true)
	return NewCourseService(repo, teachers, cache, time.Minute, nil, zap.NewNop())
}

func TestCourseServiceListIsCachedUntilMutation(t *testing.T) {
	repo := &mockCourseRepo{items: map[string]models.Course{"c1": {ID: "c1", Title: "Tally"}}}
	svc := newTestCourseService(repo)

	_, hit, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	courses, hit, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Len(t, courses, 1)

	_, err = svc.Create(context.Background(), CourseRequest{Title: "Excel", Duration: "1 month", Fee: 500})
	require.NoError(t, err)
	courses, hit, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, courses, 2)
	assert.Equal(t, 2, repo.listCalls)
}

func TestCourseServiceCreateValidation(t *testing.T) {
	repo := &mockCourseRepo{items: map[string]models.Course{"c1": {ID: "c1", Title: "Tally"}}}
	svc := newTestCourseService(repo)

	_, err := svc.Create(context.Background(), CourseRequest{Title: "tally", Duration: "3 months"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 409, appErr.Status)
	assert.Equal(t, msgCourseTitle, appErr.Message)

	_, err = svc.Create(context.Background(), CourseRequest{Title: "Excel", Duration: "1 month", Fee: -1})
	assert.Equal(t, 400, appErrors.FromError(err).Status)

	ghost := "ghost"
	_, err = svc.Create(context.Background(), CourseRequest{Title: "Excel", Duration: "1 month", TeacherID: &ghost})
	assert.Equal(t, 404, appErrors.FromError(err).Status)

	owner := "t1"
	course, err := svc.Create(context.Background(), CourseRequest{Title: "Excel", Duration: "1 month", TeacherID: &owner})
	require.NoError(t, err)
	mine, err := svc.ListByTeacher(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, course.ID, mine[0].ID)
}

func TestCourseServiceUpdateKeepsOwnTitle(t *testing.T) {
	repo := &mockCourseRepo{items: map[string]models.Course{"c1": {ID: "c1", Title: "Tally", Duration: "3 months"}}}
	svc := newTestCourseService(repo)

	updated, err := svc.Update(context.Background(), "c1", CourseRequest{Title: "Tally", Duration: "4 months", Paid: true})
	require.NoError(t, err)
	assert.Equal(t, "4 months", updated.Duration)
	assert.True(t, repo.items["c1"].Paid)
}

func TestCourseServiceDeleteWithCertificates(t *testing.T) {
	repo := &mockCourseRepo{items: map[string]models.Course{"c1": {ID: "c1", Title: "Tally"}}}
	svc := newTestCourseService(repo)

	repo.deleteErr = &pq.Error{Code: "23503", Constraint: "certificates_course_id_fkey"}
	err := svc.Delete(context.Background(), "c1")
	assert.Equal(t, 409, appErrors.FromError(err).Status)

	repo.deleteErr = nil
	require.NoError(t, svc.Delete(context.Background(), "c1"))
	err = svc.Delete(context.Background(), "c1")
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestCourseServiceRenameDropsCachedVerifications(t *testing.T) {
	repo := &mockCourseRepo{items: map[string]models.Course{"c1": {ID: "c1", Title: "Tally"}}}
	teachers := &mockTeacherRepo{items: map[string]*models.Teacher{}}
	store := newMemCacheRepo()
	cache := NewCacheService(store, nil, time.Minute, zap.NewNop(), true)
	svc := NewCourseService(repo, teachers, cache, time.Minute, nil, zap.NewNop())

	require.NoError(t, cache.Set(context.Background(), certificateCacheKey("RITE-AB12C"), models.CertificateDetail{CourseTitle: "Tally"}, 0))

	_, err := svc.Update(context.Background(), "c1", CourseRequest{Title: "Tally Prime", Duration: "3 months"})
	require.NoError(t, err)
	assert.NotContains(t, store.entries, certificateCacheKey("RITE-AB12C"))
}
