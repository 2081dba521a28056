package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/service"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
	"github.com/noah-isme/rite-edu-api/pkg/logger"
)

type stubValidator struct {
	claims *models.JWTClaims
	err    error
	seen   string
}

func (s *stubValidator) ValidateToken(_ context.Context, token string) (*models.JWTClaims, error) {
	s.seen = token
	return s.claims, s.err
}

type captureRecorder struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (r *captureRecorder) Record(entry models.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func adminClaims() *models.JWTClaims {
	return &models.JWTClaims{Session: models.Session{UserID: "admin-1", Username: "root", Role: models.RoleAdmin}}
}

func TestJWTRejectsMissingAndMalformedHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", JWT(&stubValidator{claims: adminClaims()}), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, header := range []string{"", "Token abc", "Bearer"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestJWTStoresClaimsAndActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator := &stubValidator{claims: adminClaims()}
	var actor string
	var claims *models.JWTClaims
	router := gin.New()
	router.GET("/", JWT(validator), func(c *gin.Context) {
		actor = c.GetString(logger.ActorKey)
		claims, _ = CurrentClaims(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer tok-123")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-123", validator.seen)
	assert.Equal(t, "admin-1", actor)
	require.NotNil(t, claims)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestJWTPropagatesValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", JWT(&stubValidator{err: appErrors.Clone(appErrors.ErrUnauthorized, "session revoked")}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session revoked")
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		claims *models.JWTClaims
		want   int
	}{
		{name: "no session", want: http.StatusUnauthorized},
		{name: "wrong role", claims: &models.JWTClaims{Session: models.Session{UserID: "s1", Role: models.RoleStudent}}, want: http.StatusForbidden},
		{name: "allowed", claims: adminClaims(), want: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/", func(c *gin.Context) {
				if tc.claims != nil {
					c.Set(ContextUserKey, tc.claims)
				}
				c.Next()
			}, RequireRoles(models.RoleAdmin, models.RoleTeacher), func(c *gin.Context) { c.Status(http.StatusOK) })

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestAuditRecordsSuccessfulMutations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := &captureRecorder{}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserKey, adminClaims())
		c.Next()
	})
	router.PATCH("/enrollments/:studentId/:courseId/approve", Audit(recorder, models.AuditActionEnrollmentApprove, "enrollments"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.DELETE("/jobs/:id", Audit(recorder, models.AuditActionJobDelete, "jobs"), func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPatch, "/enrollments/s1/c1/approve", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/jobs/j1", nil))

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, models.AuditActionEnrollmentApprove, entry.Action)
	assert.Equal(t, "admin-1", entry.ActorID)
	assert.Equal(t, models.RoleAdmin, entry.ActorRole)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, "s1/c1", *entry.ResourceID)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Payload, &payload))
	assert.Equal(t, "PATCH", payload["method"])
}

func TestResponseMetaCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var meta map[string]interface{}
	router := gin.New()
	router.Use(WithResponseMeta())
	router.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		StampProcessingTime(c)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, true, meta[MetaCacheHit])
	assert.Contains(t, meta, MetaProcessingTime)
}

func TestMetricsLabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/courses/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/courses/c1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `path="/courses/:id"`)
	assert.Contains(t, body, `path="unmatched"`)
	assert.NotContains(t, body, `path="/metrics"`)
	assert.Equal(t, uint64(2), metrics.Snapshot().RequestsTotal)
}
