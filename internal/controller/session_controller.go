package controller

import (
	"errors"
	"strconv"

	"tamanedu_backend/internal/model"
	"tamanedu_backend/internal/service"
	"tamanedu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

func (c *SessionController) ownedSession(ctx *gin.Context) *model.GradingSession {
	return resolveOwnedSession(ctx, c.SessionService)
}

// Create godoc
// @Summary Create a grading session
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SessionRequest true "session info"
// @Success 201 {object} util.Response{data=model.GradingSession}
// @Failure 400 {object} util.Response
// @Router /api/sessions [post]
func (c *SessionController) Create(ctx *gin.Context) {
	var req service.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	session, err := c.SessionService.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// List godoc
// @Summary List the caller's grading sessions
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/sessions [get]
func (c *SessionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	claims := util.GetUserFromContext(ctx)
	sessions, total, err := c.SessionService.List(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  sessions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary Get one grading session
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=model.GradingSession}
// @Failure 404 {object} util.Response
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	session := c.ownedSession(ctx)
	if session == nil {
		return
	}
	util.Success(ctx, session)
}

// Update godoc
// @Summary Update a grading session
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body service.SessionRequest true "session info"
// @Success 200 {object} util.Response{data=model.GradingSession}
// @Router /api/sessions/{id} [put]
func (c *SessionController) Update(ctx *gin.Context) {
	session := c.ownedSession(ctx)
	if session == nil {
		return
	}

	var req service.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SessionService.Update(session, req); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// Delete godoc
// @Summary Delete a grading session and everything under it
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id} [delete]
func (c *SessionController) Delete(ctx *gin.Context) {
	session := c.ownedSession(ctx)
	if session == nil {
		return
	}

	if err := c.SessionService.Delete(session.ID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddStudent godoc
// @Summary Add a student to the session roster
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param body body service.StudentRequest true "student info"
// @Success 201 {object} util.Response{data=model.Student}
// @Router /api/sessions/{id}/students [post]
func (c *SessionController) AddStudent(ctx *gin.Context) {
	session := c.ownedSession(ctx)
	if session == nil {
		return
	}

	var req service.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.SessionService.AddStudent(session.ID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, student)
}

// ListStudents godoc
// @Summary List the session roster
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=[]model.Student}
// @Router /api/sessions/{id}/students [get]
func (c *SessionController) ListStudents(ctx *gin.Context) {
	session := c.ownedSession(ctx)
	if session == nil {
		return
	}

	students, err := c.SessionService.ListStudents(session.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// RemoveStudent godoc
// @Summary Remove a student from the roster
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param studentId path int true "student id"
// @Success 200 {object} util.Response
// @Router /api/sessions/{id}/students/{studentId} [delete]
func (c *SessionController) RemoveStudent(ctx *gin.Context) {
	session := c.ownedSession(ctx)
	if session == nil {
		return
	}

	studentID, err := strconv.ParseUint(ctx.Param("studentId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	if err := c.SessionService.RemoveStudent(session.ID, uint(studentID)); err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
