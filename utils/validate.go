package utils

import (
	"regexp"
	"strings"
)

// 与前端共用的极简邮箱形状：@ 前后非空、@ 后有点、无空白。
// 刻意不做 RFC 5322 级别的校验。
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// MinLen 去掉首尾空白后是否达到最小长度
func MinLen(s string, n int) bool {
	return len(strings.TrimSpace(s)) >= n
}
