package app

import (
	"quiz_backend/docs"
	"quiz_backend/internal/config"
	"quiz_backend/internal/middleware"
	"quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
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
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		authGroup.GET("/feedback-questions", c.test.ListFeedbackQuestions)

		authGroup.GET("/tests", c.test.ListTests)
		authGroup.POST("/tests", c.test.CreateTest)
		authGroup.GET("/tests/:id", c.test.GetTest)
		authGroup.DELETE("/tests/:id", c.test.DeleteTest)
		authGroup.POST("/tests/:id/open", c.test.OpenTest)
		authGroup.POST("/tests/:id/close", c.test.CloseTest)

		authGroup.POST("/tests/:id/submissions", c.submission.Submit)
		authGroup.GET("/users/me/submissions", c.submission.MySubmissions)

		authGroup.GET("/tests/:id/results/overview", c.result.Overview)
		authGroup.GET("/tests/:id/results/users/:userId", c.result.ParticipantResult)
	}
}
