package handler

import (
	"StudioLeads/config"
	"StudioLeads/internal/middleware"
	"StudioLeads/internal/model"
	"StudioLeads/internal/model/dto"
	"StudioLeads/internal/service"
	"StudioLeads/pkg/errors"
	"StudioLeads/pkg/logger"
	"StudioLeads/pkg/response"
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"
)

// Login 管理台登录
// POST /v1/admin/login
// 口令是共享明文，只做劝退不做安全边界。常量时间比较算是最低限度的卫生。
func Login(ctx context.Context, c *app.RequestContext) {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if config.Cfg.AdminPassword == "" {
		response.Error(ctx, c, errors.LoginDisabled)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(config.Cfg.AdminPassword)) != 1 {
		response.Error(ctx, c, errors.PasswordInvalid)
		return
	}

	if err := middleware.MarkAuthenticated(c); err != nil {
		logger.Logger.Error("failed to persist console session", zap.Error(err))
		response.Error(ctx, c, fmt.Errorf("session save failed"))
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"authenticated": true,
	})
}

// Logout 管理台登出
// POST /v1/admin/logout
func Logout(ctx context.Context, c *app.RequestContext) {
	if err := middleware.ClearSession(c); err != nil {
		logger.Logger.Warn("failed to clear console session", zap.Error(err))
	}
	response.NoContent(ctx, c)
}

// ListSubmissions 列出线索，支持搜索与状态过滤
// GET /v1/admin/submissions?q=&status=
func ListSubmissions(ctx context.Context, c *app.RequestContext) {
	query := c.Query("q")
	status := model.SubmissionStatus(c.Query("status"))
	if status != "" && !model.ValidStatus(status) {
		response.Error(ctx, c, errors.StatusInvalid)
		return
	}

	adminService := service.Admin()
	items := adminService.List(ctx, query, status)

	counts := adminService.StatusCounts(ctx)
	meta := make(map[string]interface{}, len(counts))
	for k, v := range counts {
		meta[k] = v
	}

	response.SuccessWithMeta(ctx, c, dto.ListSubmissionsResponse{
		Items: items,
		Total: len(items),
	}, meta)
}

// UpdateSubmissionStatus 变更单条线索状态
// PATCH /v1/admin/submissions/:id/status
// 数据层不限制状态流转方向，前进式流转只是界面约定。
func UpdateSubmissionStatus(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	sub, err := service.Admin().UpdateStatus(ctx, id, model.SubmissionStatus(req.Status))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, sub)
}

// DeleteSubmission 删除单条线索
// DELETE /v1/admin/submissions/:id
func DeleteSubmission(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")

	if err := service.Admin().Delete(ctx, id); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// ExportSubmissionsCSV 导出全量线索 CSV
// GET /v1/admin/submissions/export
// 导出永远是全量未过滤列表，与列表页的搜索条件无关。
func ExportSubmissionsCSV(ctx context.Context, c *app.RequestContext) {
	csv := service.Admin().ExportCSV(ctx)

	filename := fmt.Sprintf("contact-submissions-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "text/csv; charset=utf-8", []byte(csv))
}

// GetCSRFToken 下发 CSRF token，供控制台在写操作前获取
// GET /v1/admin/csrf
func GetCSRFToken(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, map[string]string{
		"csrfToken": middleware.CSRFToken(c),
	})
}
