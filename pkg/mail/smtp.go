package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig SMTP 中继配置
type SMTPConfig struct {
	Addr           string // host:port
	Host           string // 仅主机名，用于 TLS SNI 和 AUTH
	Username       string
	Password       string
	TimeoutSeconds int
}

// SMTPClient 每次发送建立一条新连接，不做连接复用
type SMTPClient struct {
	cfg SMTPConfig
}

func NewSMTPClient(cfg SMTPConfig) *SMTPClient {
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 10
	}
	return &SMTPClient{cfg: cfg}
}

// Send 走完整的 SMTP 会话：dial -> STARTTLS -> AUTH -> MAIL/RCPT/DATA。
// 连接上设置了整体 deadline，中继挂死不会把 HTTP 响应一起拖住。
func (s *SMTPClient) Send(ctx context.Context, msg Message) error {
	if msg.From == "" || !strings.Contains(msg.From, "@") {
		return fmt.Errorf("invalid From address: %q", msg.From)
	}
	if msg.To == "" || !strings.Contains(msg.To, "@") {
		return fmt.Errorf("invalid To address: %q", msg.To)
	}

	raw, err := BuildRawMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to build raw message: %w", err)
	}

	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to dial smtp relay: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set smtp deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("failed to start tls: %w", err)
		}
	}

	// 本地中继（如 Mailpit）不要求认证，凭据为空时直接跳过
	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := client.Mail(msg.From); err != nil {
		return fmt.Errorf("smtp MAIL failed: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp RCPT failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message body: %w", err)
	}

	return client.Quit()
}
