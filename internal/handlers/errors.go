package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/political-canvas/canvass-api/internal/authz"
	"github.com/political-canvas/canvass-api/internal/constants"
	apierrors "github.com/political-canvas/canvass-api/internal/errors"
	"github.com/political-canvas/canvass-api/internal/middleware"
	"github.com/political-canvas/canvass-api/internal/services"
)

// classifyError maps a service error onto a status code and response body.
func classifyError(err error) (int, *apierrors.APIError) {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		return http.StatusUnauthorized, apierrors.NewAPIError(apierrors.ErrCodeUnauthorized, "Authentication required")
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrTokenExpired):
		return http.StatusUnauthorized, apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, authz.ErrForbidden):
		return http.StatusForbidden, apierrors.NewAPIError(apierrors.ErrCodeForbidden, err.Error())
	case errors.Is(err, services.ErrVoterNotFound),
		errors.Is(err, services.ErrTerritoryNotFound),
		errors.Is(err, services.ErrWalklistNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNoContactLog):
		return http.StatusNotFound, apierrors.NewAPIError(apierrors.ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrUsernameTaken):
		return http.StatusBadRequest, apierrors.NewAPIError(apierrors.ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		return http.StatusBadRequest, apierrors.NewAPIError(apierrors.ErrCodeInvalidInput,
			fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrVoterNameRequired),
		errors.Is(err, services.ErrInvalidVoterAge),
		errors.Is(err, services.ErrInvalidContactStatus),
		errors.Is(err, services.ErrInvalidSentiment),
		errors.Is(err, services.ErrInvalidSyncEntry),
		errors.Is(err, services.ErrTerritoryNameRequired),
		errors.Is(err, services.ErrInvalidAreaType),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrWalklistNameRequired),
		errors.Is(err, services.ErrInvalidWalklistStatus):
		return http.StatusBadRequest, apierrors.NewAPIError(apierrors.ErrCodeInvalidInput, err.Error())
	default:
		return http.StatusInternalServerError, apierrors.NewAPIError(apierrors.ErrCodeInternalError, err.Error())
	}
}

// respondError writes the mapped error. Unexpected errors are logged and
// returned with their message.
func respondError(c *gin.Context, err error) {
	status, apiErr := classifyError(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	apierrors.RespondWithError(c, status, apiErr)
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func parseIDQuery(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

func identity(c *gin.Context) (authz.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return authz.Identity{}, false
	}
	return id, true
}
