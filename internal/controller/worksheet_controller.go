package controller

import (
	"errors"
	"net/http"
	"strconv"

	"tamanedu_backend/internal/service"
	"tamanedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WorksheetController struct {
	WorksheetService *service.WorksheetService
	SessionService   *service.SessionService
}

func NewWorksheetController(worksheetService *service.WorksheetService, sessionService *service.SessionService) *WorksheetController {
	return &WorksheetController{
		WorksheetService: worksheetService,
		SessionService:   sessionService,
	}
}

// Upload godoc
// @Summary Upload a worksheet scan for one student
// @Tags worksheets
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param studentId formData int true "student id"
// @Param pageNumber formData int false "page number" default(1)
// @Param file formData file true "worksheet image"
// @Success 201 {object} util.Response{data=model.Worksheet}
// @Failure 400 {object} util.Response
// @Router /api/sessions/{id}/worksheets [post]
func (c *WorksheetController) Upload(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	studentID, err := strconv.ParseUint(ctx.PostForm("studentId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}
	pageNumber, _ := strconv.Atoi(ctx.DefaultPostForm("pageNumber", "1"))

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

	ws, err := c.WorksheetService.UploadScan(ctx.Request.Context(),
		session.ID, uint(studentID), pageNumber,
		fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, ws)
}

// List godoc
// @Summary List a session's worksheet scans
// @Tags worksheets
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=[]model.Worksheet}
// @Router /api/sessions/{id}/worksheets [get]
func (c *WorksheetController) List(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	sheets, err := c.WorksheetService.List(session.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sheets)
}

// Delete godoc
// @Summary Delete one worksheet scan
// @Tags worksheets
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param worksheetId path int true "worksheet id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id}/worksheets/{worksheetId} [delete]
func (c *WorksheetController) Delete(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	worksheetID, err := strconv.ParseUint(ctx.Param("worksheetId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid worksheet id")
		return
	}

	ws, err := c.WorksheetService.Get(uint(worksheetID))
	if err != nil || ws.SessionID != session.ID {
		util.NotFound(ctx)
		return
	}

	if err := c.WorksheetService.Delete(ctx.Request.Context(), ws); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Process godoc
// @Summary Run OCR extraction over the session's pending scans
// @Tags worksheets
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=service.ProcessResult}
// @Failure 409 {object} util.Response
// @Router /api/sessions/{id}/worksheets/process [post]
func (c *WorksheetController) Process(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	result, err := c.WorksheetService.ProcessPending(ctx.Request.Context(), session.ID)
	if err != nil {
		if errors.Is(err, util.ErrNothingToProcess) {
			util.Error(ctx, http.StatusConflict, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
