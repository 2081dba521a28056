package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/rite-edu-api/internal/handler"
	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/pkg/config"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

type tokenTable map[string]*models.JWTClaims

func (t tokenTable) ValidateToken(_ context.Context, token string) (*models.JWTClaims, error) {
	claims, ok := t[token]
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

func newTestEngine() http.Handler {
	tokens := tokenTable{
		"student-token": {Session: models.Session{UserID: "s1", Role: models.RoleStudent}},
		"teacher-token": {Session: models.Session{UserID: "t1", Role: models.RoleTeacher}},
	}
	return New(Params{
		Config: &config.Config{Env: config.EnvProduction, APIPrefix: "/api/v1"},
		Logger: zap.NewNop(),
		Tokens: tokens,
		Handlers: Handlers{
			Auth:         handler.NewAuthHandler(nil, nil),
			Admin:        handler.NewAdminHandler(nil),
			Teacher:      handler.NewTeacherHandler(nil),
			Student:      handler.NewStudentHandler(nil),
			Franchise:    handler.NewFranchiseHandler(nil),
			Course:       handler.NewCourseHandler(nil),
			Enrollment:   handler.NewEnrollmentHandler(nil),
			Certificate:  handler.NewCertificateHandler(nil),
			Job:          handler.NewJobHandler(nil),
			Announcement: handler.NewAnnouncementHandler(nil),
			Contact:      handler.NewContactHandler(nil),
			Dashboard:    handler.NewDashboardHandler(nil),
			Export:       handler.NewExportHandler(nil),
			Metrics:      handler.NewMetricsHandler(nil, nil),
		},
	})
}

func serve(engine http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealthIsPublic(t *testing.T) {
	engine := newTestEngine()
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/ready", "").Code)
}

func TestRouterRoleGuards(t *testing.T) {
	engine := newTestEngine()

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"admin without token", http.MethodGet, "/api/v1/admin/dashboard", "", http.StatusUnauthorized},
		{"admin with unknown token", http.MethodGet, "/api/v1/admin/dashboard", "forged", http.StatusUnauthorized},
		{"admin as student", http.MethodGet, "/api/v1/admin/dashboard", "student-token", http.StatusForbidden},
		{"student route as teacher", http.MethodPost, "/api/v1/student/jobs/j1/apply", "teacher-token", http.StatusForbidden},
		{"franchise route as student", http.MethodGet, "/api/v1/franchise/profile", "student-token", http.StatusForbidden},
		{"teacher route as student", http.MethodGet, "/api/v1/teacher/dashboard", "student-token", http.StatusForbidden},
		{"unknown route", http.MethodGet, "/api/v1/nowhere", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(engine, tc.method, tc.path, tc.token)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestRouterHidesDocsInProduction(t *testing.T) {
	engine := newTestEngine()
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/docs/index.html", "").Code)
}
