package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/pkg/response"
)

type enrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID string) (*models.Enrollment, error)
	ListPending(ctx context.Context) ([]models.EnrollmentDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error)
	Approve(ctx context.Context, studentID, courseID string) error
	Reject(ctx context.Context, studentID, courseID string) error
}

// EnrollRequest is the student payload for joining a course.
type EnrollRequest struct {
	CourseID string `json:"course_id" binding:"required"`
}

// EnrollmentHandler drives the enrollment lifecycle.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /student/enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	student, err := studentFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid enrollment payload"))
		return
	}

	enrollment, err := h.service.Enroll(c.Request.Context(), student.ID, req.CourseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Mine godoc
// @Summary Enrollments of the signed-in student
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/enrollments [get]
func (h *EnrollmentHandler) Mine(c *gin.Context) {
	student, err := studentFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListByStudent(c.Request.Context(), student.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Pending godoc
// @Summary Enrollments awaiting approval
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/enrollments [get]
func (h *EnrollmentHandler) Pending(c *gin.Context) {
	items, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Approve godoc
// @Summary Approve an enrollment
// @Tags Enrollments
// @Produce json
// @Security BearerAuth
// @Param studentId path string true "Student row ID"
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/enrollments/{studentId}/{courseId}/approve [patch]
func (h *EnrollmentHandler) Approve(c *gin.Context) {
	if err := h.service.Approve(c.Request.Context(), c.Param("studentId"), c.Param("courseId")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "enrollment approved")
}

// Reject godoc
// @Summary Reject an enrollment
// @Description Removes only the named enrollment; the student's other enrollments are kept.
// @Tags Enrollments
// @Security BearerAuth
// @Param studentId path string true "Student row ID"
// @Param courseId path string true "Course ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/enrollments/{studentId}/{courseId} [delete]
func (h *EnrollmentHandler) Reject(c *gin.Context) {
	if err := h.service.Reject(c.Request.Context(), c.Param("studentId"), c.Param("courseId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
