package controller

import (
	"fmt"
	"net/http"

	"tamanedu_backend/internal/service"
	"tamanedu_backend/internal/util"
	"tamanedu_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportController struct {
	ReportService  *service.ReportService
	SessionService *service.SessionService
}

func NewReportController(reportService *service.ReportService, sessionService *service.SessionService) *ReportController {
	return &ReportController{
		ReportService:  reportService,
		SessionService: sessionService,
	}
}

// Get godoc
// @Summary Session grade report
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=service.SessionReport}
// @Router /api/sessions/{id}/report [get]
func (c *ReportController) Get(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	report, err := c.ReportService.GetReport(ctx.Request.Context(), session.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Export godoc
// @Summary Download the session report as CSV
// @Tags reports
// @Produce text/csv
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {string} string "CSV body"
// @Router /api/sessions/{id}/report/export [get]
func (c *ReportController) Export(ctx *gin.Context) {
	session := resolveOwnedSession(ctx, c.SessionService)
	if session == nil {
		return
	}

	report, err := c.ReportService.GetReport(ctx.Request.Context(), session.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="session-%d-report.csv"`, session.ID))
	ctx.Status(http.StatusOK)

	if err := service.WriteCSV(ctx.Writer, report); err != nil {
		// Headers already went out, nothing sensible to send back.
		logger.Log.Warn("stream report csv", zap.Uint("session_id", session.ID), zap.Error(err))
	}
}
