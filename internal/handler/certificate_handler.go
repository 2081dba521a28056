package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/middleware"
	"github.com/noah-isme/rite-edu-api/internal/models"
	"github.com/noah-isme/rite-edu-api/internal/service"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
	"github.com/noah-isme/rite-edu-api/pkg/response"
)

type certificateService interface {
	Issue(ctx context.Context, req service.IssueCertificateRequest) (*models.Certificate, error)
	Verify(ctx context.Context, certificateID string) (*models.CertificateDetail, bool, error)
	List(ctx context.Context) ([]models.CertificateDetail, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.CertificateDetail, error)
	Delete(ctx context.Context, id string) error
}

// CertificateHandler issues and verifies certificates.
type CertificateHandler struct {
	service certificateService
}

// NewCertificateHandler constructs the handler.
func NewCertificateHandler(svc certificateService) *CertificateHandler {
	return &CertificateHandler{service: svc}
}

// Verify godoc
// @Summary Verify a certificate
// @Description Public lookup by certificate identifier. Matching is exact and case-sensitive.
// @Tags Certificates
// @Produce json
// @Param certificateId path string true "Certificate identifier, e.g. RITE-AB12C"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /certificates/verify/{certificateId} [get]
func (h *CertificateHandler) Verify(c *gin.Context) {
	certificateID := c.Param("certificateId")
	if strings.TrimSpace(certificateID) == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "certificate id is required"))
		return
	}

	detail, hit, err := h.service.Verify(c.Request.Context(), certificateID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, detail, nil, middleware.ExtractMeta(c))
}

// List godoc
// @Summary All issued certificates
// @Tags Certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/certificates [get]
func (h *CertificateHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Mine godoc
// @Summary Certificates of the signed-in student
// @Tags Certificates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/certificates [get]
func (h *CertificateHandler) Mine(c *gin.Context) {
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

// Issue godoc
// @Summary Issue a certificate
// @Description Leave certificate_id empty to generate a RITE-XXXXX identifier.
// @Tags Certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.IssueCertificateRequest true "Certificate payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/certificates [post]
func (h *CertificateHandler) Issue(c *gin.Context) {
	var req service.IssueCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid certificate payload"))
		return
	}

	cert, err := h.service.Issue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cert)
}

// Delete godoc
// @Summary Revoke a certificate
// @Tags Certificates
// @Security BearerAuth
// @Param id path string true "Certificate row ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/certificates/{id} [delete]
func (h *CertificateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
