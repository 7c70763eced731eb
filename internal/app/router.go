package app

import (
	"biocheck_backend/docs"
	"biocheck_backend/internal/config"
	"biocheck_backend/internal/middleware"
	"biocheck_backend/internal/model"
	"biocheck_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.Profile)

		assessments := authGroup.Group("/assessments")
		{
			assessments.GET("/current", c.assessment.GetCurrent)
			assessments.GET("/current/focus-areas/:area/questions", c.assessment.GetQuestions)
			assessments.PUT("/current/focus-areas/:area/answers/:questionId", c.assessment.PutAnswer)
			assessments.POST("/current/focus-areas/:area/complete", c.assessment.CompleteFocusArea)
			assessments.POST("/complete", c.assessment.CompleteAssessment)
			assessments.POST("/reset", c.assessment.Reset)

			assessments.GET("/history", c.assessment.History)
			assessments.GET("/history/:id", c.assessment.GetRecord)
			assessments.DELETE("/history/:id", c.assessment.DeleteRecord)
			assessments.GET("/history/:id/export", c.assessment.ExportRecord)
		}
	}

	// Admin catalog management
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Vet, model.Admin))
	{
		admin.GET("/questions", c.question.List)
		admin.POST("/questions", c.question.Create)
		admin.GET("/questions/:qid", c.question.Get)
		admin.PUT("/questions/:qid", c.question.Update)
		admin.DELETE("/questions/:qid", c.question.Delete)
		admin.PUT("/questions/:qid/translations", c.question.UpsertTranslation)
		admin.POST("/catalog/rebuild", c.question.Rebuild)
	}
}
