package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-recruit/backend/config"
	"campus-recruit/backend/internal/api/handler"
	"campus-recruit/backend/internal/api/middleware"
	"campus-recruit/backend/internal/model"
	"campus-recruit/backend/internal/repository"
	"campus-recruit/backend/pkg/jwt"
	"campus-recruit/backend/pkg/redis"
)

// 请求体上限，简历与求职信均为文本字段，1MB 足够
const maxBodyBytes = 1 << 20

// New 构建路由
func New(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, userRepo repository.UserRepository, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(&cfg.Server.CORS))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := middleware.JWTAuth(jwtMgr, rdb, userRepo)
	optionalAuth := middleware.OptionalJWTAuth(jwtMgr, userRepo)
	rateLimit := middleware.RateLimit(rdb, &cfg.Auth.RateLimit, logger)

	v1 := r.Group("/api/v1")
	{
		// ── 认证 ──
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", rateLimit, h.Auth.Register)
			authGroup.POST("/login", rateLimit, h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.RefreshToken)

			authGroup.POST("/logout", auth, h.Auth.Logout)
			authGroup.GET("/profile", auth, h.Auth.GetProfile)
			authGroup.PUT("/profile", auth, h.Auth.UpdateProfile)
			authGroup.PUT("/change-password", auth, h.Auth.ChangePassword)
		}

		// ── 用户管理 ──
		users := v1.Group("/users", auth)
		{
			// 详情放开给本人，Handler 内做 admin-or-self 判断
			users.GET("/:id", h.User.GetByID)

			admin := users.Group("", middleware.RoleAuth(model.RoleAdmin))
			{
				admin.POST("", h.User.Create)
				admin.GET("", h.User.List)
				admin.GET("/stats", h.User.Stats)
				admin.PUT("/:id", h.User.Update)
				admin.DELETE("/:id", h.User.Delete)
				admin.PUT("/:id/toggle-status", h.User.ToggleStatus)
			}
		}

		// ── 职位 ──
		jobs := v1.Group("/jobs")
		{
			// 浏览公开，带 Token 时注入身份便于后续个性化
			jobs.GET("", optionalAuth, h.Job.List)
			jobs.GET("/stats", optionalAuth, h.Job.Stats)
			jobs.GET("/:id", optionalAuth, h.Job.GetByID)

			jobs.GET("/recruiter", auth, middleware.RoleAuth(model.RoleRecruiter, model.RoleAdmin), h.Job.ListByRecruiter)
			jobs.GET("/recruiter/:id", auth, middleware.RoleAuth(model.RoleRecruiter, model.RoleAdmin), h.Job.ListByRecruiter)

			write := jobs.Group("", auth, middleware.RoleAuth(model.RoleRecruiter, model.RoleAdmin))
			{
				write.POST("", h.Job.Create)
				write.PUT("/:id", h.Job.Update)
				write.DELETE("/:id", h.Job.Delete)
			}
		}

		// ── 申请 ──
		applications := v1.Group("/applications", auth)
		{
			applications.POST("", middleware.RoleAuth(model.RoleStudent, model.RoleAdmin), h.Application.Apply)
			applications.GET("", h.Application.List)
			applications.GET("/stats", middleware.RoleAuth(model.RoleAdmin), h.Application.Stats)
			applications.GET("/:id", h.Application.GetByID)
			applications.PUT("/:id/status", middleware.RoleAuth(model.RoleRecruiter, model.RoleAdmin), h.Application.UpdateStatus)
			applications.DELETE("/:id", middleware.RoleAuth(model.RoleStudent, model.RoleAdmin), h.Application.Delete)
			applications.GET("/job/:jobId", middleware.RoleAuth(model.RoleRecruiter, model.RoleAdmin), h.Application.ListByJob)
		}

		// ── 工作台 ──
		v1.GET("/dashboard", auth, h.Dashboard.GetDashboard)

		// ── 导出 ──
		export := v1.Group("/export", auth)
		{
			export.GET("/applications", middleware.RoleAuth(model.RoleRecruiter, model.RoleAdmin), h.Export.ExportJobApplications)
			export.GET("/deadlines.ics", middleware.RoleAuth(model.RoleStudent), h.Export.DeadlineCalendar)
		}
	}

	return r
}
