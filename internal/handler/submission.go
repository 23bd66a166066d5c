package handler

import (
	"StudioLeads/internal/model"
	"StudioLeads/internal/model/dto"
	"StudioLeads/internal/service"
	"StudioLeads/pkg/errors"
	"StudioLeads/pkg/response"
	"context"
	stderrors "errors"

	"github.com/cloudwego/hertz/pkg/app"
)

// CreateSubmission 捕获一条联络表单提交
// POST /v1/submissions
// 本地持久化成功即返回成功，远端通知结果只落日志与指标。
func CreateSubmission(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateSubmissionRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	sub, _, err := service.Capture().Submit(ctx, req)
	if err != nil {
		var verr *service.ValidationError
		if stderrors.As(err, &verr) {
			response.ErrorWithDetails(ctx, c, errors.ValidationFailed, verr.Fields)
			return
		}
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.CreateSubmissionResponse{
		ID:        sub.ID,
		Timestamp: sub.Timestamp,
		Status:    string(sub.Status),
	})
}

// GetFormOptions 返回表单与校验共用的固定选项集
// GET /v1/meta/options
func GetFormOptions(ctx context.Context, c *app.RequestContext) {
	response.Success(ctx, c, dto.OptionsResponse{
		Services: model.ServiceOptions,
		Budgets:  model.BudgetOptions,
		Cities:   model.CityOptions,
	})
}
