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

type franchiseService interface {
	List(ctx context.Context, status string) ([]models.Franchise, error)
	Get(ctx context.Context, id string) (*models.Franchise, error)
	SetStatus(ctx context.Context, id string, req service.FranchiseStatusRequest) (*models.Franchise, error)
}

// FranchiseHandler reviews franchise applications.
type FranchiseHandler struct {
	service franchiseService
}

// NewFranchiseHandler constructs the handler.
func NewFranchiseHandler(svc franchiseService) *FranchiseHandler {
	return &FranchiseHandler{service: svc}
}

// List godoc
// @Summary List franchises
// @Tags Franchises
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Success 200 {object} response.Envelope
// @Router /admin/franchises [get]
func (h *FranchiseHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Franchise detail
// @Tags Franchises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Franchise ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/franchises/{id} [get]
func (h *FranchiseHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// SetStatus godoc
// @Summary Approve or reject a franchise
// @Tags Franchises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Franchise ID"
// @Param payload body service.FranchiseStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/franchises/{id}/status [patch]
func (h *FranchiseHandler) SetStatus(c *gin.Context) {
	var req service.FranchiseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid status payload"))
		return
	}
	item, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Profile godoc
// @Summary Own franchise profile
// @Tags Franchises
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /franchise/profile [get]
func (h *FranchiseHandler) Profile(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	franchise, ok := claims.AsFranchise()
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "franchise session required"))
		return
	}
	item, err := h.service.Get(c.Request.Context(), franchise.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}
