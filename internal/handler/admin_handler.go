package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/service"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
	"github.com/noah-isme/rite-edu-api/pkg/response"
)

type adminService interface {
	List(ctx context.Context) ([]models.Admin, error)
	Create(ctx context.Context, req service.CreateAdminRequest) (*models.Admin, error)
	Update(ctx context.Context, id string, req service.UpdateAdminRequest) (*models.Admin, error)
	Delete(ctx context.Context, id, actorID string) error
	ChangePassword(ctx context.Context, id string, req models.ChangePasswordRequest) error
}

// AdminHandler manages back-office accounts.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(svc adminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// List godoc
// @Summary List admins
// @Tags Admins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/admins [get]
func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admins, nil)
}

// Create godoc
// @Summary Create admin
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateAdminRequest true "Admin payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/admins [post]
func (h *AdminHandler) Create(c *gin.Context) {
	var req service.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid admin payload"))
		return
	}
	admin, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admin)
}

// Update godoc
// @Summary Update admin
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Param payload body service.UpdateAdminRequest true "Admin payload"
// @Success 200 {object} response.Envelope
// @Router /admin/admins/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	var req service.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid admin payload"))
		return
	}
	admin, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admin, nil)
}

// Delete godoc
// @Summary Delete admin
// @Tags Admins
// @Security BearerAuth
// @Param id path string true "Admin ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /admin/admins/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags Admins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ChangePasswordRequest true "Password payload"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/password [post]
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid password payload"))
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "password updated")
}
