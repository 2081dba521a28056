package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/service"
	"github.com/noah-isme/rite-edu-api/pkg/response"
)

type contactService interface {
	Submit(ctx context.Context, req service.ContactRequest) (*models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Delete(ctx context.Context, id string) error
}

// ContactHandler accepts public contact messages.
type ContactHandler struct {
	service contactService
}

// NewContactHandler constructs the handler.
func NewContactHandler(svc contactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// Submit godoc
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body service.ContactRequest true "Contact payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid contact payload"))
		return
	}
	if _, err := h.service.Submit(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, service.ContactSentMessage)
}

// List godoc
// @Summary Contact inbox
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Delete godoc
// @Summary Delete a contact message
// @Tags Contact
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 204
// @Router /admin/contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
