package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/csrf"

	"StudioLeads/config"
	"StudioLeads/pkg/errors"
	"StudioLeads/pkg/response"
)

// CSRFMiddleware 管理台变更类请求的 CSRF 防护。
// 依赖 SessionMiddleware 先挂载；token 从 X-CSRF-TOKEN 头取。
func CSRFMiddleware() app.HandlerFunc {
	return csrf.New(
		csrf.WithSecret(config.Cfg.CSRFSecret),
		csrf.WithKeyLookUp("header:X-CSRF-TOKEN"),
		csrf.WithErrorFunc(func(ctx context.Context, c *app.RequestContext) {
			response.Error(ctx, c, errors.CSRFTokenInvalid)
			c.Abort()
		}),
	)
}

// CSRFToken 当前会话的 csrf token
func CSRFToken(c *app.RequestContext) string {
	return csrf.GetToken(c)
}
