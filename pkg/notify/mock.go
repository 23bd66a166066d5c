package notify

import (
	"context"
	"errors"
	"sync"

	"StudioLeads/internal/model/dto"
)

// MockClient 可配置的通知客户端 mock，实现 Client 接口
type MockClient struct {
	mu    sync.Mutex
	Calls []dto.ContactRequest

	// FailAll 置为 true 时模拟端点不可达
	FailAll bool
	// StatusCode 非零时作为模拟的 HTTP 状态码返回
	StatusCode int
}

func NewMockClient() *MockClient {
	return &MockClient{
		Calls: make([]dto.ContactRequest, 0),
	}
}

func (m *MockClient) Post(ctx context.Context, req dto.ContactRequest) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.FailAll {
		return Result{Err: errors.New("mock notify endpoint unreachable")}
	}

	status := m.StatusCode
	if status == 0 {
		status = 200
	}

	return Result{
		Delivered:  status == 200,
		StatusCode: status,
	}
}
