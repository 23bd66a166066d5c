package handler

import (
	"StudioLeads/internal/model/dto"
	"StudioLeads/internal/service"
	"StudioLeads/pkg/errors"
	"StudioLeads/pkg/logger"
	"context"
	stderrors "errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"
)

// HandleContact 公共通知端点
// POST /api/contact
// 响应形状是对外契约（{success,message} / {error,details}），不走统一包裹格式。
func HandleContact(ctx context.Context, c *app.RequestContext) {
	switch string(c.Method()) {
	case consts.MethodPost:
		// fallthrough below
	case consts.MethodOptions:
		// 预检请求由 CORS 中间件应答，这里兜底
		c.Status(consts.StatusOK)
		return
	default:
		c.JSON(consts.StatusMethodNotAllowed, dto.ContactErrorResponse{
			Error: errors.MethodNotAllowed.Message,
		})
		return
	}

	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		c.JSON(consts.StatusBadRequest, dto.ContactErrorResponse{
			Error:   errors.MissingFields.Message,
			Details: err.Error(),
		})
		return
	}

	if err := service.Notify().HandleContact(ctx, req); err != nil {
		writeContactError(ctx, c, err)
		return
	}

	c.JSON(consts.StatusOK, dto.ContactSuccessResponse{
		Success: true,
		Message: "Email sent successfully",
	})
}

// writeContactError 按错误类别映射状态码：校验类 400，发送类 500
func writeContactError(ctx context.Context, c *app.RequestContext, err error) {
	switch {
	case stderrors.Is(err, errors.MissingFields):
		c.JSON(consts.StatusBadRequest, dto.ContactErrorResponse{
			Error: errors.MissingFields.Message,
		})
	case stderrors.Is(err, errors.InvalidEmail):
		c.JSON(consts.StatusBadRequest, dto.ContactErrorResponse{
			Error: errors.InvalidEmail.Message,
		})
	default:
		logger.Logger.Error("contact notification failed", zap.Error(err))
		c.JSON(consts.StatusInternalServerError, dto.ContactErrorResponse{
			Error:   errors.EmailSendFailed.Message,
			Details: strings.TrimPrefix(err.Error(), errors.EmailSendFailed.Message+": "),
		})
	}
}

// HealthCheck 健康检查
// GET /healthz
func HealthCheck(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}
