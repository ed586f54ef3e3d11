package app

import (
	"codequest_backend/docs"
	"codequest_backend/internal/config"
	"codequest_backend/internal/middleware"
	"codequest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	registerPublicRoutes(router, c)

	// 2. 需要登录的路由：会话 Cookie 或 Bearer JWT
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, a.Sessions))
	{
		registerUserRoutes(authGroup, c)
	}
}

func registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		// 登录
		public.GET("/login", c.auth.Login)
		public.GET("/callback", c.auth.Callback)
		public.GET("/logout", c.auth.Logout)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.PasswordLogin)

		// 课程目录
		public.GET("/languages", c.catalog.GetLanguages)
		public.GET("/languages/:id", c.catalog.GetLanguage)
		public.GET("/languages/:id/lessons", c.catalog.GetLessons)
		public.GET("/languages/:id/quizzes", c.catalog.GetQuizzes)
		public.GET("/lessons/:id", c.catalog.GetLesson)
		public.GET("/quiz/:id", c.catalog.GetQuiz)
		public.GET("/challenges", c.catalog.GetChallenges)
		public.GET("/challenges/:id", c.catalog.GetChallenge)

		public.GET("/achievements", c.achievement.GetAchievements)
		public.GET("/leaderboard", c.achievement.GetLeaderboard)
	}
}

func registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/user", c.auth.GetUser)
	group.GET("/auth/token", c.auth.IssueToken)

	// 学习进度
	group.GET("/progress", c.progress.GetProgress)
	group.POST("/progress", c.progress.CompleteLesson)
	group.GET("/languages/:id/progress", c.progress.GetCourseProgress)

	// 收藏
	group.GET("/favorites", c.favorite.GetFavorites)
	group.POST("/favorites", c.favorite.AddFavorite)
	group.DELETE("/favorites/:languageId", c.favorite.RemoveFavorite)

	// 测验与挑战
	group.POST("/quiz/submit", c.quiz.SubmitQuiz)
	group.GET("/quiz/attempts", c.quiz.GetAttempts)
	group.POST("/challenges/submit", c.challenge.SubmitChallenge)
	group.GET("/challenges/submissions", c.challenge.GetSubmissions)

	// AI 助教
	group.POST("/chat", c.chat.Chat)
	group.GET("/chat/history", c.chat.GetHistory)
	group.DELETE("/chat/history", c.chat.ClearHistory)
	group.POST("/tutor/explain", c.chat.ExplainCode)
	group.POST("/tutor/debug", c.chat.DebugCode)
	group.POST("/tutor/hint", c.chat.Hint)

	// 用户
	group.GET("/user/achievements", c.achievement.GetUserAchievements)
	group.GET("/user/stats", c.user.GetStats)
	group.GET("/user/xp", c.user.GetXPHistory)
	group.POST("/user/checkin", c.user.CheckIn)
	group.POST("/user/avatar", c.user.UploadAvatar)
}
