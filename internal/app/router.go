package app

import (
	"gyanbrix_backend/internal/middleware"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/pkg/monitoring"
	"gyanbrix_backend/pkg/security"
	"gyanbrix_backend/pkg/tracing"
	"time"

	"gyanbrix_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) buildRouter() {
	gin.SetMode(a.cfg.Server.Mode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(security.CORS(a.cfg.CORS.AllowedOrigins))
	r.Use(security.Secure())
	r.Use(monitoring.MetricsMiddleware())
	if a.cfg.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}

	window := time.Duration(a.cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	r.Use(security.RateLimiter(a.cfg.RateLimit.MaxRequests, window))

	r.GET("/health", a.controllers.Health.Health)
	r.GET("/metrics", monitoring.PrometheusHandler())
	docs.SwaggerInfo.BasePath = "/api"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	if a.cfg.Storage.Type == "local" {
		r.Static("/uploads", a.cfg.Storage.LocalPath)
	}

	a.registerRoutes(r)
	a.router = r
}

func (a *App) registerRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// public
	api.POST("/auth/register", a.controllers.Auth.Register)
	api.POST("/auth/login", a.controllers.Auth.Login)

	// any authenticated user
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(a.cfg))
	authed.Use(middleware.ActivityMiddleware(a.repos.User))
	{
		authed.GET("/profile", a.controllers.Auth.Profile)

		// content browsing
		authed.GET("/classes", a.controllers.Content.ListClasses)
		authed.GET("/classes/:classId/subjects", a.controllers.Content.ListSubjects)
		authed.GET("/subjects/:subjectId/chapters", a.controllers.Content.ListChapters)
		authed.GET("/chapters/:id", a.controllers.Content.GetChapter)
		authed.GET("/banners", a.controllers.Banner.List)

		// quizzes and attempts
		authed.GET("/quizzes", a.controllers.Quiz.List)
		authed.GET("/quizzes/:id", a.controllers.Quiz.Get)
		authed.POST("/quizzes/:id/attempts", a.controllers.Attempt.Start)
		authed.GET("/attempts/history", a.controllers.Attempt.History)
		authed.GET("/attempts/history/:id", a.controllers.Attempt.Detail)
		authed.GET("/attempts/:sessionId", a.controllers.Attempt.GetSession)
		authed.POST("/attempts/:sessionId/answer", a.controllers.Attempt.SelectAnswer)
		authed.POST("/attempts/:sessionId/navigate", a.controllers.Attempt.Navigate)
		authed.POST("/attempts/:sessionId/submit", a.controllers.Attempt.Submit)
		authed.DELETE("/attempts/:sessionId", a.controllers.Attempt.Abandon)
	}

	// admin only
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.cfg))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	admin.Use(middleware.ActivityMiddleware(a.repos.User))
	{
		admin.POST("/classes", a.controllers.Content.CreateClass)
		admin.PUT("/classes/:classId", a.controllers.Content.UpdateClass)
		admin.DELETE("/classes/:classId", a.controllers.Content.DeleteClass)

		admin.POST("/classes/:classId/subjects", a.controllers.Content.CreateSubject)
		admin.PUT("/subjects/:subjectId", a.controllers.Content.UpdateSubject)
		admin.DELETE("/subjects/:subjectId", a.controllers.Content.DeleteSubject)

		admin.POST("/classes/:classId/subjects/:subjectId/chapters", a.controllers.Content.CreateChapter)
		admin.PUT("/chapters/:id", a.controllers.Content.UpdateChapter)
		admin.DELETE("/chapters/:id", a.controllers.Content.DeleteChapter)
		admin.POST("/chapters/:id/pdf", a.controllers.Content.UploadChapterPDF)

		admin.POST("/classes/:classId/subjects/:subjectId/chapters/:chapterId/questions", a.controllers.Question.CreateBatch)
		admin.GET("/classes/:classId/subjects/:subjectId/chapters/:chapterId/questions", a.controllers.Question.ListByChapter)
		admin.PUT("/questions/:id", a.controllers.Question.Update)
		admin.DELETE("/questions/:id", a.controllers.Question.Delete)

		admin.GET("/quizzes/candidates", a.controllers.Quiz.Candidates)
		admin.POST("/quizzes", a.controllers.Quiz.Create)
		admin.PUT("/quizzes/:id", a.controllers.Quiz.Update)
		admin.DELETE("/quizzes/:id", a.controllers.Quiz.Delete)

		admin.POST("/banners", a.controllers.Banner.Create)
		admin.DELETE("/banners/:id", a.controllers.Banner.Delete)
	}
}
