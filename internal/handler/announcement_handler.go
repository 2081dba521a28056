package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/service"
	"github.com/noah-isme/rite-edu-api/pkg/response"
)

type announcementService interface {
	ListNotifications(ctx context.Context) ([]models.Notification, error)
	CreateNotification(ctx context.Context, req service.NotificationRequest) (*models.Notification, error)
	UpdateNotification(ctx context.Context, id string, req service.NotificationRequest) (*models.Notification, error)
	DeleteNotification(ctx context.Context, id string) error
	ListExaminations(ctx context.Context) ([]models.Examination, error)
	CreateExamination(ctx context.Context, req service.ExaminationRequest) (*models.Examination, error)
	UpdateExamination(ctx context.Context, id string, req service.ExaminationRequest) (*models.Examination, error)
	DeleteExamination(ctx context.Context, id string) error
}

// AnnouncementHandler serves notifications and examination schedules.
type AnnouncementHandler struct {
	service announcementService
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(svc announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: svc}
}

// ListNotifications godoc
// @Summary Notifications, newest first
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *AnnouncementHandler) ListNotifications(c *gin.Context) {
	items, err := h.service.ListNotifications(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CreateNotification godoc
// @Summary Publish a notification
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.NotificationRequest true "Notification payload"
// @Success 201 {object} response.Envelope
// @Router /admin/notifications [post]
func (h *AnnouncementHandler) CreateNotification(c *gin.Context) {
	var req service.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid notification payload"))
		return
	}
	item, err := h.service.CreateNotification(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateNotification godoc
// @Summary Edit a notification
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Param payload body service.NotificationRequest true "Notification payload"
// @Success 200 {object} response.Envelope
// @Router /admin/notifications/{id} [put]
func (h *AnnouncementHandler) UpdateNotification(c *gin.Context) {
	var req service.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid notification payload"))
		return
	}
	item, err := h.service.UpdateNotification(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// DeleteNotification godoc
// @Summary Delete a notification
// @Tags Announcements
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204
// @Router /admin/notifications/{id} [delete]
func (h *AnnouncementHandler) DeleteNotification(c *gin.Context) {
	if err := h.service.DeleteNotification(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListExaminations godoc
// @Summary Upcoming examinations
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /examinations [get]
func (h *AnnouncementHandler) ListExaminations(c *gin.Context) {
	items, err := h.service.ListExaminations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// CreateExamination godoc
// @Summary Schedule an examination
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ExaminationRequest true "Examination payload"
// @Success 201 {object} response.Envelope
// @Router /admin/examinations [post]
func (h *AnnouncementHandler) CreateExamination(c *gin.Context) {
	var req service.ExaminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid examination payload"))
		return
	}
	item, err := h.service.CreateExamination(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateExamination godoc
// @Summary Edit an examination
// @Tags Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Examination ID"
// @Param payload body service.ExaminationRequest true "Examination payload"
// @Success 200 {object} response.Envelope
// @Router /admin/examinations/{id} [put]
func (h *AnnouncementHandler) UpdateExamination(c *gin.Context) {
	var req service.ExaminationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid examination payload"))
		return
	}
	item, err := h.service.UpdateExamination(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// DeleteExamination godoc
// @Summary Delete an examination
// @Tags Announcements
// @Security BearerAuth
// @Param id path string true "Examination ID"
// @Success 204
// @Router /admin/examinations/{id} [delete]
func (h *AnnouncementHandler) DeleteExamination(c *gin.Context) {
	if err := h.service.DeleteExamination(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
