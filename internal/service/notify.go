package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"StudioLeads/config"
	"StudioLeads/internal/model/dto"
	pkgerrors "StudioLeads/pkg/errors"
	"StudioLeads/pkg/logger"
	"StudioLeads/pkg/mail"
	"StudioLeads/pkg/metrics"
	"StudioLeads/utils"
)

var (
	notifyService *NotifyService
	notifyOnce    sync.Once
)

func Notify() *NotifyService {
	notifyOnce.Do(func() {
		cfg := config.Cfg
		notifyService = NewNotifyService(NotifyConfig{
			From:     cfg.SMTPUsername,
			To:       cfg.NotifyTo(),
			SiteName: cfg.SiteName,
		}, mail.GetClient())
	})
	return notifyService
}

// NotifyConfig 通知函数的依赖配置，显式注入便于测试替换
type NotifyConfig struct {
	From     string // 发件地址
	To       string // 内部通知收件箱
	SiteName string
}

// NotifyService 无状态的通知函数：校验请求、渲染两封邮件、顺序发送。
// 没有重试、没有队列、没有幂等键——失败让调用方拿 500 自行决定。
type NotifyService struct {
	cfg  NotifyConfig
	mail mail.Client
}

func NewNotifyService(cfg NotifyConfig, client mail.Client) *NotifyService {
	return &NotifyService{cfg: cfg, mail: client}
}

// HandleContact 处理一次通知请求。
// 任何校验失败都发生在第一封邮件发出之前。
func (s *NotifyService) HandleContact(ctx context.Context, req dto.ContactRequest) error {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return pkgerrors.MissingFields
	}

	if !utils.ValidateEmail(req.Email) {
		return pkgerrors.InvalidEmail
	}

	receivedAt := utils.FormatIST(time.Now())

	internal, err := renderInternalNotification(s.cfg.SiteName, req, receivedAt)
	if err != nil {
		return fmt.Errorf("failed to render internal notification: %w", err)
	}

	autoReply, err := renderAutoReply(s.cfg.SiteName, req)
	if err != nil {
		return fmt.Errorf("failed to render auto-reply: %w", err)
	}

	// 两封顺序发送：先内部通知，再给提交者的自动回复
	if err := s.send(ctx, "internal", mail.Message{
		From:     s.cfg.From,
		To:       s.cfg.To,
		ReplyTo:  req.Email,
		Subject:  fmt.Sprintf("New Contact Form Submission from %s", req.Name),
		TextBody: internal.text,
		HTMLBody: internal.html,
	}); err != nil {
		return err
	}

	if err := s.send(ctx, "auto_reply", mail.Message{
		From:     s.cfg.From,
		To:       req.Email,
		Subject:  fmt.Sprintf("Thank you for contacting %s", s.cfg.SiteName),
		TextBody: autoReply.text,
		HTMLBody: autoReply.html,
	}); err != nil {
		return err
	}

	logger.Logger.Info("Contact notification delivered",
		zap.String("name", req.Name),
		zap.String("email", req.Email),
	)

	return nil
}

func (s *NotifyService) send(ctx context.Context, kind string, msg mail.Message) error {
	start := time.Now()

	if err := s.mail.Send(ctx, msg); err != nil {
		metrics.RecordEmailFailed(kind, time.Since(start).Seconds())
		logger.Logger.Error("Failed to send email",
			zap.String("kind", kind),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s", pkgerrors.EmailSendFailed, err.Error())
	}

	metrics.RecordEmailSent(kind, time.Since(start).Seconds())
	return nil
}

type renderedEmail struct {
	text string
	html string
}

func renderInternalNotification(siteName string, req dto.ContactRequest, receivedAt string) (renderedEmail, error) {
	data := map[string]interface{}{
		"SiteName":   siteName,
		"Name":       req.Name,
		"Email":      req.Email,
		"Phone":      req.Phone,
		"Company":    req.Company,
		"Service":    req.Service,
		"Message":    req.Message,
		"ReceivedAt": receivedAt,
	}
	return render(internalTextTmpl, internalHTMLTmpl, data)
}

func renderAutoReply(siteName string, req dto.ContactRequest) (renderedEmail, error) {
	data := map[string]interface{}{
		"SiteName": siteName,
		"Name":     req.Name,
		"Message":  req.Message,
	}
	return render(autoReplyTextTmpl, autoReplyHTMLTmpl, data)
}

// executor text/template 和 html/template 的公共面
type executor interface {
	Execute(w io.Writer, data any) error
}

func render(textTmpl, htmlTmpl executor, data map[string]interface{}) (renderedEmail, error) {
	var textBuf, htmlBuf bytes.Buffer

	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return renderedEmail{}, err
	}
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return renderedEmail{}, err
	}

	return renderedEmail{text: textBuf.String(), html: htmlBuf.String()}, nil
}
