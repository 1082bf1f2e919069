package controller

import (
	"errors"
	"net/http"
	"strconv"

	"tamanedu_backend/internal/service"
	"tamanedu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GradingController struct {
	GradingService *service.GradingService
	SessionService *service.SessionService
}

func NewGradingController(gradingService *service.GradingService, sessionService *service.SessionService) *GradingController {
	return &GradingController{
		GradingService: gradingService,
		SessionService: sessionService,
	}
}

// Grade godoc
// @Summary Grade (or regrade) every student in the session
// @Tags grading
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=service.GradeRunResult}
// @Failure 409 {object} util.Response
// @Router /api/sessions/{id}/grade [post]
func (c *GradingController) Grade(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	result, err := c.GradingService.GradeSession(ctx.Request.Context(), session.ID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoAnswerKey), errors.Is(err, util.ErrNothingToGrade):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// ListFlagged godoc
// @Summary List responses flagged for manual review
// @Tags grading
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=[]model.Response}
// @Router /api/sessions/{id}/flagged [get]
func (c *GradingController) ListFlagged(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	responses, err := c.GradingService.ListFlagged(session.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, responses)
}

// swagger:model EditResponseRequest
type EditResponseRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// EditResponse godoc
// @Summary Manually correct one extracted answer
// @Description Unflags the response, re-normalizes the text and updates the stored grade in the same transaction.
// @Tags grading
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param responseId path int true "response id"
// @Param body body EditResponseRequest true "corrected answer"
// @Success 200 {object} util.Response{data=model.Response}
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id}/responses/{responseId} [put]
func (c *GradingController) EditResponse(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	responseID, err := strconv.ParseUint(ctx.Param("responseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid response id")
		return
	}

	var req EditResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.GradingService.EditResponse(ctx.Request.Context(), session.ID, uint(responseID), req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResponseNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}
