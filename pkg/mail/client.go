package mail

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"StudioLeads/config"
	"StudioLeads/pkg/logger"
)

// Message 一封待发送的邮件，正文同时带纯文本和 HTML 两个版本
type Message struct {
	From     string
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Client 邮件客户端接口
type Client interface {
	// Send 同步发送一封邮件，返回 nil 表示中继已接收
	Send(ctx context.Context, msg Message) error
}

var (
	mailClient Client
	mailOnce   sync.Once
)

// Init 初始化全局 SMTP 客户端
func Init() error {
	mailOnce.Do(func() {
		cfg := config.Cfg

		mailClient = NewSMTPClient(SMTPConfig{
			Addr:           cfg.SMTPAddr(),
			Host:           cfg.SMTPHost,
			Username:       cfg.SMTPUsername,
			Password:       cfg.SMTPPassword,
			TimeoutSeconds: cfg.SMTPTimeoutSeconds,
		})

		logger.Logger.Info("Mail client initialized",
			zap.String("addr", cfg.SMTPAddr()),
			zap.String("username", cfg.SMTPUsername),
		)
	})

	return nil
}

func GetClient() Client {
	if mailClient == nil {
		panic("mail client not initialized, call mail.Init() first")
	}
	return mailClient
}
