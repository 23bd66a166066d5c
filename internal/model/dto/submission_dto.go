package dto

import "StudioLeads/internal/model"

// ========== 捕获管线 DTO ==========

// CreateSubmissionRequest 联络表单的原始输入
type CreateSubmissionRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Business  string `json:"business"`
	Location  string `json:"location"`
	Service   string `json:"service,omitempty"`
	Budget    string `json:"budget,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
}

// CreateSubmissionResponse 捕获成功的响应。
// 只要本地持久化成功就算成功，远端通知结果不在这里体现。
type CreateSubmissionResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

// ========== 管理台 DTO ==========

// LoginRequest 管理台登录请求
type LoginRequest struct {
	Password string `json:"password"`
}

// ListSubmissionsResponse 管理台列表响应
type ListSubmissionsResponse struct {
	Items []model.ContactSubmission `json:"items"`
	Total int                       `json:"total"`
}

// UpdateStatusRequest 状态变更请求
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OptionsResponse 表单与校验共用的固定选项集
type OptionsResponse struct {
	Services []string `json:"services"`
	Budgets  []string `json:"budgets"`
	Cities   []string `json:"cities"`
}
