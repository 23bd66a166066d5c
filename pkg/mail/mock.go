package mail

import (
	"context"
	"errors"
	"sync"
)

// MockClient 可配置的邮件客户端 mock，实现 Client 接口
type MockClient struct {
	mu   sync.Mutex
	Sent []Message

	// FailNext 置为 true 时，下一次调用返回 mock 错误并自动复位
	FailNext bool
	// FailAll 置为 true 时，所有调用都返回 mock 错误
	FailAll bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Sent: make([]Message, 0),
	}
}

func (m *MockClient) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAll {
		return errors.New("mock mail send failure")
	}
	if m.FailNext {
		m.FailNext = false
		return errors.New("mock mail send failure")
	}

	m.Sent = append(m.Sent, msg)
	return nil
}

// SentCount 已成功“发送”的邮件数
func (m *MockClient) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
