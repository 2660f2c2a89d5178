package app

import (
	"edutech_backend/docs"
	"edutech_backend/internal/config"
	"edutech_backend/internal/controller"
	"edutech_backend/internal/middleware"
	"edutech_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/ping", controller.Ping)
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/quiz", c.quiz.Status)
		public.GET("/skills", c.quiz.Skills)

		public.GET("/ai-health", c.ai.Health)
		public.POST("/ai-response", c.ai.Ask)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/quiz", c.quiz.Submit)
	rg.GET("/my-results", c.result.MyResults)

	rg.GET("/me", c.user.Me)
	rg.GET("/profile", c.user.GetProfile)
	rg.PATCH("/profile", c.user.UpdateProfile)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	{
		admin.POST("/register", c.auth.AdminRegister)
		admin.POST("/login", c.auth.AdminLogin)

		adminOnly := admin.Group("/")
		adminOnly.Use(middleware.AuthMiddleware(cfg.JWT.Secret), middleware.AdminMiddleware())
		{
			adminOnly.GET("/users", c.user.ListUsers)
		}
	}
}
