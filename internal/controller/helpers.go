package controller

import (
	"errors"
	"strconv"

	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/service"
	"tamanedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// resolveOwnedSession turns the :id parameter into a session the caller may
// touch. It writes the error response itself and returns nil on failure.
func resolveOwnedSession(ctx *gin.Context, svc *service.SessionService) *model.GradingSession {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid session id")
		return nil
	}

	claims := util.GetUserFromContext(ctx)
	session, err := svc.GetOwned(uint(id), claims.UserID, claims.Role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return nil
	}
	return session
}
