package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/rite-edu-api/internal/middleware"
	"github.com/noah-isme/rite-edu-api/internal/models"
	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return nil
	}
	return claims
}

// studentFromContext resolves the signed-in student or reports 401.
func studentFromContext(c *gin.Context) (models.StudentSession, error) {
	claims := claimsFromContext(c)
	if claims == nil {
		return models.StudentSession{}, appErrors.ErrUnauthorized
	}
	student, ok := claims.AsStudent()
	if !ok {
		return models.StudentSession{}, appErrors.Clone(appErrors.ErrForbidden, "student session required")
	}
	return student, nil
}

func invalidPayload(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, message)
}

func listFilterFromQuery(c *gin.Context) models.ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return models.ListFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		Page:      page,
		PageSize:  size,
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
}
