package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/response"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/apierr"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/requestdata"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

// serviceError maps a service/aggregate failure onto a transport error.
// Aggregate error codes carry their own status; anything untagged is a 500
// so callers never mistake an internal fault for bad input.
func serviceError(err error) *apierr.Error {
	if services.IsNotFound(err) {
		return apierr.New(http.StatusNotFound, "not_found", err)
	}
	code := domainagg.CodeOf(err)
	switch code {
	case domainagg.CodeValidation:
		return apierr.New(http.StatusBadRequest, string(code), err)
	case domainagg.CodeNotFound:
		return apierr.New(http.StatusNotFound, string(code), err)
	case domainagg.CodeDuplicateAttendee:
		return apierr.New(http.StatusConflict, string(code), err)
	case domainagg.CodeCrossTenantReference:
		return apierr.New(http.StatusUnprocessableEntity, string(code), err)
	case domainagg.CodeConflict:
		return apierr.New(http.StatusConflict, string(code), err)
	case domainagg.CodeStorageTimeout:
		return apierr.New(http.StatusGatewayTimeout, string(code), err)
	case domainagg.CodeInvariantViolation:
		return apierr.New(http.StatusUnprocessableEntity, string(code), err)
	default:
		return apierr.New(http.StatusInternalServerError, "internal", err)
	}
}

func respondServiceError(c *gin.Context, err error) {
	response.RespondAPIError(c, serviceError(err))
}

// churchScope pulls the caller's tenant out of the request context. The auth
// middleware guarantees it is set on protected routes; a missing scope here
// means a wiring bug, surfaced as 403 rather than a panic.
func churchScope(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.ChurchID == uuid.Nil {
		response.RespondError(c, http.StatusForbidden, "forbidden", nil)
		return uuid.Nil, false
	}
	return rd.ChurchID, true
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return uuid.Nil, false
	}
	return id, true
}
