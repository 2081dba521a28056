package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/dto"
	"github.com/noah-isme/rite-edu-api/internal/middleware"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
	"github.com/noah-isme/rite-edu-api/pkg/response"
)

type dashboardService interface {
	AdminStats(ctx context.Context) (*dto.AdminStats, bool, error)
	Student(ctx context.Context, studentID string) (*dto.StudentDashboardResponse, error)
}

// DashboardHandler wires dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Admin godoc
// @Summary Admin dashboard totals
// @Description Counts of students, courses, certificates, franchises, jobs, admins, contacts and pending enrollments, plus revenue from paid courses.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	stats, cacheHit, err := h.service.AdminStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.StampProcessingTime(c)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}

// Student godoc
// @Summary Student dashboard
// @Description Profile, enrollments, certificates, announcements and open jobs for the signed-in student.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/dashboard [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	student, err := studentFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.service.Student(c.Request.Context(), student.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
