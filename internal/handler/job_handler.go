package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/service"
	"github.com/noah-isme/rite-edu-api/pkg/response"
)

type jobService interface {
	List(ctx context.Context, status string) ([]models.Job, error)
	ListForStudent(ctx context.Context, studentID string) ([]models.StudentJob, error)
	Get(ctx context.Context, id string) (*models.JobDetail, error)
	Create(ctx context.Context, req service.JobRequest) (*models.Job, error)
	Update(ctx context.Context, id string, req service.JobRequest) (*models.Job, error)
	ChangeStatus(ctx context.Context, id string, req service.JobStatusRequest) error
	Delete(ctx context.Context, id string) error
	Apply(ctx context.Context, jobID, studentID string) (*models.JobApplication, error)
	Applicants(ctx context.Context, jobID string) ([]models.Applicant, error)
	Eligibility(ctx context.Context, jobID, studentID string) (*models.EligibilityReport, error)
}

// JobHandler exposes the job board to admins and students.
type JobHandler struct {
	service jobService
}

// NewJobHandler constructs the handler.
func NewJobHandler(svc jobService) *JobHandler {
	return &JobHandler{service: svc}
}

// List godoc
// @Summary List job postings
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, completed or closed"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, nil)
}

// Get godoc
// @Summary Job detail with applicants
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Create godoc
// @Summary Post a job
// @Description certificates_required accepts a JSON array of certificate names or a comma separated string.
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.JobRequest true "Job payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req service.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid job payload"))
		return
	}

	job, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job)
}

// Update godoc
// @Summary Edit a job
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param payload body service.JobRequest true "Job payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	var req service.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid job payload"))
		return
	}

	job, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// ChangeStatus godoc
// @Summary Change job status
// @Tags Jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param payload body service.JobStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/jobs/{id}/status [patch]
func (h *JobHandler) ChangeStatus(c *gin.Context) {
	var req service.JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid status payload"))
		return
	}

	if err := h.service.ChangeStatus(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "job status updated")
}

// Delete godoc
// @Summary Delete a job
// @Tags Jobs
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Applicants godoc
// @Summary Applicants for a job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/jobs/{id}/applicants [get]
func (h *JobHandler) Applicants(c *gin.Context) {
	items, err := h.service.Applicants(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Open godoc
// @Summary Active jobs for the signed-in student
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/jobs [get]
func (h *JobHandler) Open(c *gin.Context) {
	student, err := studentFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	jobs, err := h.service.ListForStudent(c.Request.Context(), student.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, nil)
}

// Apply godoc
// @Summary Apply for a job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /student/jobs/{id}/apply [post]
func (h *JobHandler) Apply(c *gin.Context) {
	student, err := studentFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	application, err := h.service.Apply(c.Request.Context(), c.Param("id"), student.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, application)
}

// Eligibility godoc
// @Summary Advisory eligibility report
// @Description Lists required certificates the student does not hold yet. Never blocks applying.
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/jobs/{id}/eligibility [get]
func (h *JobHandler) Eligibility(c *gin.Context) {
	student, err := studentFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.Eligibility(c.Request.Context(), c.Param("id"), student.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}
