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

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, claims *models.JWTClaims) error
}

type registrationService interface {
	RegisterStudent(ctx context.Context, req service.RegisterStudentRequest) (*models.Student, error)
	RegisterFranchise(ctx context.Context, req service.RegisterFranchiseRequest) (*models.Franchise, error)
}

// AuthHandler wires HTTP endpoints to the auth and registration services.
type AuthHandler struct {
	service      authService
	registration registrationService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, registration registrationService) *AuthHandler {
	return &AuthHandler{service: svc, registration: registration}
}

// Login godoc
// @Summary Authenticate account
// @Description Authenticate against the admin, teacher, student or franchise partition
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Logout godoc
// @Summary Terminate the current session
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "logged out")
}

// Me godoc
// @Summary Current session
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, claims.Session, nil)
}

// RegisterStudent godoc
// @Summary Student self-registration
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.RegisterStudentRequest true "Student registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/register/student [post]
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req service.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid registration payload"))
		return
	}

	student, err := h.registration.RegisterStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, student)
}

// RegisterFranchise godoc
// @Summary Franchise application
// @Description Submit a franchise application. Accounts start in pending status.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.RegisterFranchiseRequest true "Franchise registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/register/franchise [post]
func (h *AuthHandler) RegisterFranchise(c *gin.Context) {
	var req service.RegisterFranchiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid registration payload"))
		return
	}

	franchise, err := h.registration.RegisterFranchise(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, franchise)
}
