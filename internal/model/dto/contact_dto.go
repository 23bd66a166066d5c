package dto

// ========== 公共通知端点 DTO ==========
// /api/contact 的响应形状是对外契约，与控制台 API 的统一包裹格式无关。

// ContactRequest 通知函数的请求体
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
	Service string `json:"service,omitempty"`
}

// ContactSuccessResponse 200 响应体
type ContactSuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactErrorResponse 4xx/5xx 响应体
type ContactErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
