package controller

import (
	"tamanedu_backend/internal/service"
	"tamanedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerKeyController struct {
	AnswerKeyService *service.AnswerKeyService
	SessionService   *service.SessionService
}

func NewAnswerKeyController(answerKeyService *service.AnswerKeyService, sessionService *service.SessionService) *AnswerKeyController {
	return &AnswerKeyController{
		AnswerKeyService: answerKeyService,
		SessionService:   sessionService,
	}
}

// Upload godoc
// @Summary Upload the session answer key as CSV
// @Description Replaces any previously uploaded key. Columns: question_number (or question), answer (or correct_answer), optional points. Variants go in the answer cell separated by "|".
// @Tags answer-key
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param file formData file true "answer key CSV"
// @Success 201 {object} util.Response{data=[]model.AnswerKeyEntry}
// @Failure 400 {object} util.Response
// @Router /api/sessions/{id}/answer-key [post]
func (c *AnswerKeyController) Upload(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	entries, err := c.AnswerKeyService.Upload(session.ID, file)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, entries)
}

// List godoc
// @Summary List the session answer key
// @Tags answer-key
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=[]model.AnswerKeyEntry}
// @Router /api/sessions/{id}/answer-key [get]
func (c *AnswerKeyController) List(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	entries, err := c.AnswerKeyService.List(session.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
