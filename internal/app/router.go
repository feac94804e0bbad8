package app

import (
	"exam_integrity_backend/docs"
	"exam_integrity_backend/internal/config"
	"exam_integrity_backend/internal/middleware"
	"exam_integrity_backend/internal/model"
	"exam_integrity_backend/internal/service"
	"exam_integrity_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, storage *service.StorageService, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 教师相关接口
	teacher := router.Group("/api/teacher")
	teacher.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	a.registerTeacherRoutes(teacher, c)

	// 本地归档的报告快照；按实际生效的存储判断，MinIO/OSS 回退到本地时同样提供
	if storage.IsLocal() {
		reports := router.Group("/reports")
		reports.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
		reports.Static("/", cfg.Storage.LocalPath)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/integrity/preview", c.integrity.Preview)
	}
}

func (a *App) registerTeacherRoutes(teacher *gin.RouterGroup, c *controllers) {
	teacher.GET("/attempts/:id/integrity", c.integrity.GetAttemptReport)
	teacher.POST("/attempts/:id/integrity/archive", c.integrity.ArchiveAttemptReport)
	teacher.GET("/exams/:id/integrity", c.integrity.GetExamSummary)
}
