package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"StudioLeads/internal/model"
	"StudioLeads/internal/model/dto"
	"StudioLeads/internal/repository"
	pkgerrors "StudioLeads/pkg/errors"
	"StudioLeads/pkg/logger"
	"StudioLeads/pkg/metrics"
	"StudioLeads/pkg/notify"
	"StudioLeads/pkg/snowflake"
	"StudioLeads/utils"
)

var (
	captureService *CaptureService
	captureOnce    sync.Once
)

func Capture() *CaptureService {
	captureOnce.Do(func() {
		var client notify.Client
		if notify.Ready() {
			client = notify.GetClient()
		}
		captureService = NewCaptureService(repository.Submissions(), client)
	})
	return captureService
}

// CaptureService 捕获管线：校验 -> 无条件本地持久化 -> 尽力而为的远端通知。
// 本地写入是成败的唯一判据，邮件只是锦上添花。
type CaptureService struct {
	repo     *repository.SubmissionRepository
	notifier notify.Client
}

func NewCaptureService(repo *repository.SubmissionRepository, notifier notify.Client) *CaptureService {
	return &CaptureService{repo: repo, notifier: notifier}
}

// Validate 按表单 schema 校验，返回 字段名 -> 错误提示。空 map 表示通过。
func (s *CaptureService) Validate(req dto.CreateSubmissionRequest) map[string]string {
	fieldErrors := make(map[string]string)

	if !utils.MinLen(req.FirstName, 2) {
		fieldErrors["firstName"] = "First name must be at least 2 characters"
	}
	if !utils.MinLen(req.LastName, 2) {
		fieldErrors["lastName"] = "Last name must be at least 2 characters"
	}
	if !utils.ValidateEmail(req.Email) {
		fieldErrors["email"] = "Please enter a valid email address"
	}
	if !utils.MinLen(req.Business, 2) {
		fieldErrors["business"] = "Business name must be at least 2 characters"
	}
	if !utils.MinLen(req.Location, 1) {
		fieldErrors["location"] = "Please select your location"
	}

	// 可缺省字段：给了值就必须落在固定集合内
	if req.Service != "" && !model.InServiceOptions(req.Service) {
		fieldErrors["service"] = "Please select a valid service"
	}
	if req.Budget != "" && !model.InBudgetOptions(req.Budget) {
		fieldErrors["budget"] = "Please select a valid budget range"
	}

	return fieldErrors
}

// Submit 执行捕获管线。
// 返回的 notify.Result 只用于日志与指标，调用方不得据此改变成功语义。
func (s *CaptureService) Submit(ctx context.Context, req dto.CreateSubmissionRequest) (*model.ContactSubmission, notify.Result, error) {
	if fieldErrors := s.Validate(req); len(fieldErrors) > 0 {
		details := make(map[string]interface{}, len(fieldErrors))
		for k, v := range fieldErrors {
			details[k] = v
		}
		return nil, notify.Result{}, &ValidationError{Fields: details}
	}

	sub := model.ContactSubmission{
		ID:        nextID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Business:  req.Business,
		Location:  req.Location,
		Service:   req.Service,
		Budget:    req.Budget,
		Phone:     req.Phone,
		Message:   req.Message,
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    model.StatusNew,
	}

	// 本地持久化先行，这一步失败才算失败
	if err := s.repo.Prepend(ctx, sub); err != nil {
		return nil, notify.Result{}, err
	}

	metrics.RecordSubmissionCaptured("contact_form")
	logger.Logger.Info("Submission captured",
		zap.String("id", sub.ID),
		zap.String("email", sub.Email),
		zap.String("location", sub.Location),
	)

	// 远端通知带原始表单值，失败只记日志，永不影响成功路径
	if s.notifier == nil {
		logger.Logger.Warn("Notify client unavailable, skipping remote notification",
			zap.String("id", sub.ID),
		)
		return &sub, notify.Result{}, nil
	}
	result := s.notifier.Post(ctx, dto.ContactRequest{
		Name:    req.FirstName + " " + req.LastName,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Business,
		Message: req.Message,
		Service: req.Service,
	})

	metrics.RecordNotifyAttempt(result.Delivered)
	if result.Err != nil || !result.Delivered {
		logger.Logger.Warn("Remote notification failed, lead is kept locally",
			zap.String("id", sub.ID),
			zap.Int("status_code", result.StatusCode),
			zap.Error(result.Err),
		)
	}

	return &sub, result, nil
}

// nextID 生成提交 ID。snowflake 未初始化时退回 时间戳+随机后缀，
// 两种形态的唯一性都是尽力而为。
func nextID() string {
	if id, err := snowflake.NextSubmissionID(); err == nil {
		return id
	}
	return fmt.Sprintf("%d-%06x", time.Now().UnixMilli(), rand.Intn(1<<24))
}

// ValidationError 携带字段级错误详情的校验失败
type ValidationError struct {
	// Fields 字段名 -> 错误提示
	Fields map[string]interface{}
}

func (e *ValidationError) Error() string {
	return pkgerrors.ValidationFailed.Message
}
