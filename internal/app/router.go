package app

import (
	"tamanedu_backend/docs"
	"tamanedu_backend/internal/config"
	"tamanedu_backend/internal/middleware"
	"tamanedu_backend/internal/model"
	"tamanedu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		authGroup.GET("/me", c.auth.Me)

		sessions := authGroup.Group("/sessions")
		{
			sessions.POST("", c.session.Create)
			sessions.GET("", c.session.List)
			sessions.GET("/:id", c.session.Get)
			sessions.PUT("/:id", c.session.Update)
			sessions.DELETE("/:id", c.session.Delete)

			sessions.POST("/:id/students", c.session.AddStudent)
			sessions.GET("/:id/students", c.session.ListStudents)
			sessions.DELETE("/:id/students/:studentId", c.session.RemoveStudent)

			sessions.POST("/:id/answer-key", c.answerKey.Upload)
			sessions.GET("/:id/answer-key", c.answerKey.List)

			sessions.POST("/:id/worksheets", c.worksheet.Upload)
			sessions.GET("/:id/worksheets", c.worksheet.List)
			sessions.DELETE("/:id/worksheets/:worksheetId", c.worksheet.Delete)
			sessions.POST("/:id/worksheets/process", c.worksheet.Process)

			sessions.POST("/:id/grade", c.grading.Grade)
			sessions.GET("/:id/flagged", c.grading.ListFlagged)
			sessions.PUT("/:id/responses/:responseId", c.grading.EditResponse)

			sessions.GET("/:id/report", c.report.Get)
			sessions.GET("/:id/report/export", c.report.Export)
		}
	}
}
