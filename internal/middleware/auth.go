package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"github.com/hertz-contrib/sessions/cookie"

	"StudioLeads/config"
	"StudioLeads/pkg/errors"
	"StudioLeads/pkg/response"
)

const (
	// SessionName 控制台会话 cookie 名
	SessionName = "console_session"
	// sessionAuthKey 会话里标记已登录的键
	sessionAuthKey = "authenticated"
)

// SessionMiddleware 控制台的 cookie 会话。
// 共享口令 + 会话只是门槛，不是安全边界。
func SessionMiddleware() app.HandlerFunc {
	store := cookie.NewStore([]byte(config.Cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   8 * 3600, // 一个工作日
		HttpOnly: true,
	})
	return sessions.New(SessionName, store)
}

// ConsoleAuthMiddleware 管理路由的会话检查
func ConsoleAuthMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		session := sessions.Default(c)
		if v, ok := session.Get(sessionAuthKey).(bool); !ok || !v {
			response.Error(ctx, c, errors.Unauthorized)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}

// MarkAuthenticated 登录成功后写入会话
func MarkAuthenticated(c *app.RequestContext) error {
	session := sessions.Default(c)
	session.Set(sessionAuthKey, true)
	return session.Save()
}

// ClearSession 登出时清会话
func ClearSession(c *app.RequestContext) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
