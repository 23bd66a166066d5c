package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 捕获与校验相关错误。
var (
	ValidationFailed = Definition{Code: "VALIDATION_FAILED", Message: "Validation failed"}
	InvalidEmail     = Definition{Code: "INVALID_EMAIL", Message: "Invalid email format"}
	MissingFields    = Definition{Code: "MISSING_FIELDS", Message: "Missing required fields"}
)

// 通知函数相关错误。
var (
	MethodNotAllowed = Definition{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed"}
	EmailSendFailed  = Definition{Code: "EMAIL_SEND_FAILED", Message: "Failed to send email"}
)

// 管理台相关错误。
var (
	Unauthorized       = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	PasswordInvalid    = Definition{Code: "PASSWORD_INVALID", Message: "Incorrect password"}
	LoginDisabled      = Definition{Code: "LOGIN_DISABLED", Message: "Console login is disabled"}
	CSRFTokenInvalid   = Definition{Code: "CSRF_TOKEN_INVALID", Message: "Missing or invalid CSRF token"}
	SubmissionNotFound = Definition{Code: "SUBMISSION_NOT_FOUND", Message: "Submission not found"}
	StatusInvalid      = Definition{Code: "STATUS_INVALID", Message: "Invalid submission status"}
	TooManyRequests    = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
	StoreWriteFailed   = Definition{Code: "STORE_WRITE_FAILED", Message: "Failed to write the local submission store"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	ValidationFailed.Code:   ValidationFailed,
	InvalidEmail.Code:       InvalidEmail,
	MissingFields.Code:      MissingFields,
	MethodNotAllowed.Code:   MethodNotAllowed,
	EmailSendFailed.Code:    EmailSendFailed,
	Unauthorized.Code:       Unauthorized,
	PasswordInvalid.Code:    PasswordInvalid,
	LoginDisabled.Code:      LoginDisabled,
	CSRFTokenInvalid.Code:   CSRFTokenInvalid,
	SubmissionNotFound.Code: SubmissionNotFound,
	StatusInvalid.Code:      StatusInvalid,
	TooManyRequests.Code:    TooManyRequests,
	StoreWriteFailed.Code:   StoreWriteFailed,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
