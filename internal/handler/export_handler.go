package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/service"
	"github.com/noah-isme/rite-edu-api/pkg/response"
)

type exportService interface {
	JobApplicants(ctx context.Context, jobID, format string) (*service.ExportResult, error)
	StudentRoster(ctx context.Context, format string) (*service.ExportResult, error)
}

// ExportHandler streams CSV and PDF downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Students godoc
// @Summary Export the student roster
// @Tags Exports
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/exports/students [get]
func (h *ExportHandler) Students(c *gin.Context) {
	result, err := h.service.StudentRoster(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeExport(c, result)
}

// JobApplicants godoc
// @Summary Export applicants of a job
// @Tags Exports
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /admin/exports/jobs/{id}/applicants [get]
func (h *ExportHandler) JobApplicants(c *gin.Context) {
	result, err := h.service.JobApplicants(c.Request.Context(), c.Param("id"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	writeExport(c, result)
}

func writeExport(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Body)
}
