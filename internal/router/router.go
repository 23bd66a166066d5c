package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"StudioLeads/config"
	"StudioLeads/internal/handler"
	"StudioLeads/internal/middleware"
	"StudioLeads/storage/redis"
)

// RegisterServer 注册公共通知 API 的路由。
// /api/contact 的响应形状是对外契约，方法过滤在 handler 内完成（Any 兜住所有方法以便返回 405）。
func RegisterServer(h *server.Hertz) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.PublicCORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	api := h.Group("/api")
	if config.Cfg.RateLimitEnabled && redis.Ready() {
		// Redis 不可用时直接不挂限流，限流是保护层不是功能依赖
		api.Use(middleware.ContactRateLimitMiddleware())
	}
	api.Any("/contact", handler.HandleContact)

	h.GET("/healthz", handler.HealthCheck)
}

// RegisterConsole 注册运营控制台的路由。
func RegisterConsole(h *server.Hertz) {
	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.ConsoleCORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())
	h.Use(middleware.SessionMiddleware())

	v1 := h.Group("/v1")

	// 捕获管线：无需鉴权，前台表单直接调用
	v1.POST("/submissions", handler.CreateSubmission)
	v1.GET("/meta/options", handler.GetFormOptions)

	// 管理台：登录本身不鉴权，其余全部过会话校验
	admin := v1.Group("/admin")
	{
		// 登录在 CSRF 校验之外，客户端此时还拿不到 token
		admin.POST("/login", handler.Login)

		authed := admin.Group("")
		authed.Use(middleware.ConsoleAuthMiddleware())
		authed.Use(middleware.CSRFMiddleware())
		{
			authed.POST("/logout", handler.Logout)
			authed.GET("/csrf", handler.GetCSRFToken)
			authed.GET("/submissions", handler.ListSubmissions)
			authed.GET("/submissions/export", handler.ExportSubmissionsCSV)
			authed.PATCH("/submissions/:id/status", handler.UpdateSubmissionStatus)
			authed.DELETE("/submissions/:id", handler.DeleteSubmission)
		}
	}

	h.GET("/healthz", handler.HealthCheck)
}
