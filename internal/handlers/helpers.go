package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/studio-pm-api/internal/errors"
	"github.com/yukikurage/studio-pm-api/internal/middleware"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/services"
)

// requireUser returns the user loaded by RequireAuth or answers 401.
func requireUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return user, true
}

// parseIDParam reads a numeric path parameter or answers 400.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// nonZero treats an empty form field, bound as 0, as absent.
func nonZero(id *uint64) *uint64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// respondServiceError handles the errors every service shares.
func respondServiceError(c *gin.Context, err error, redirect string) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "You do not have access to this resource", redirect)
	default:
		log.Printf("[%s %s] %v", c.Request.Method, c.FullPath(), err)
		apierrors.InternalError(c, "")
	}
}
