package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rite-edu-api/internal/dto"
	"github.com/noah-isme/rite-edu-api/internal/middleware"
	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

func newTestContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var payload []byte
	if body != nil {
		switch v := body.(type) {
		case string:
			payload = []byte(v)
		default:
			payload, _ = json.Marshal(v)
		}
	}
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

func withSession(c *gin.Context, session models.Session) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Session: session})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type fakeDashboardSrv struct {
	stats       *dto.AdminStats
	statsHit    bool
	statsErr    error
	student     *dto.StudentDashboardResponse
	studentErr  error
	lastStudent string
}

func (f *fakeDashboardSrv) AdminStats(context.Context) (*dto.AdminStats, bool, error) {
	return f.stats, f.statsHit, f.statsErr
}

func (f *fakeDashboardSrv) Student(_ context.Context, studentID string) (*dto.StudentDashboardResponse, error) {
	f.lastStudent = studentID
	return f.student, f.studentErr
}

func TestDashboardHandlerAdminSuccess(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{
		stats:    &dto.AdminStats{TotalStudents: 12, Revenue: 4500},
		statsHit: true,
	})

	c, rec := newTestContext(http.MethodGet, "/admin/dashboard", nil)
	handler.Admin(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, true, meta["cache_hit"])
	assert.Contains(t, meta, "processing_time_ms")
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(12), data["totalStudents"])
}

func TestDashboardHandlerAdminError(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{statsErr: appErrors.ErrInternal})

	c, rec := newTestContext(http.MethodGet, "/admin/dashboard", nil)
	handler.Admin(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDashboardHandlerStudentRequiresStudentSession(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardSrv{})

	c, rec := newTestContext(http.MethodGet, "/student/dashboard", nil)
	handler.Student(c)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/student/dashboard", nil)
	withSession(c, models.Session{UserID: "t1", Role: models.RoleTeacher})
	handler.Student(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardHandlerStudentUsesSessionID(t *testing.T) {
	srv := &fakeDashboardSrv{student: &dto.StudentDashboardResponse{Profile: models.Student{ID: "s1"}}}
	handler := NewDashboardHandler(srv)

	c, rec := newTestContext(http.MethodGet, "/student/dashboard", nil)
	withSession(c, models.Session{UserID: "s1", Role: models.RoleStudent, StudentNumber: "S10"})
	handler.Student(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "s1", srv.lastStudent)
}
