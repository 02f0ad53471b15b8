package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"office-hours-server/internal/middleware"
	"office-hours-server/internal/scheduling"
	"office-hours-server/internal/utils"
)

// respondError maps scheduling errors to HTTP responses. Anything it does not
// recognise is logged and reported as a generic 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	if ve, ok := scheduling.IsValidation(err); ok {
		utils.ValidationFailed(c, ve.Fields)
		return
	}

	switch {
	case errors.Is(err, scheduling.ErrUnauthenticated):
		utils.Unauthorized(c, "User not authenticated")
	case errors.Is(err, scheduling.ErrForbidden):
		utils.Forbidden(c, "You do not have permission to access this resource.")
	case errors.Is(err, scheduling.ErrNotFound):
		utils.NotFound(c, "Appointment not found")
	case errors.Is(err, scheduling.ErrConflict):
		utils.Conflict(c, "Time slot is already booked")
	case errors.Is(err, scheduling.ErrNotAvailable):
		utils.UnprocessableEntity(c, "Professor is not available at the requested time")
	case errors.Is(err, scheduling.ErrPastAppointment):
		utils.BadRequest(c, "Cannot cancel past appointments")
	default:
		_ = c.Error(err)
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		utils.InternalServerError(c, "Internal server error")
	}
}

// principal reads the authenticated caller or writes a 401.
func principal(c *gin.Context) (scheduling.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
	}
	return p, ok
}
