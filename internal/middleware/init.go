package middleware

import (
	"StudioLeads/pkg/logger"
)

// Init 初始化所有中间件。
// 会话与 CSRF 都在挂载时自行构建，这里目前只留扩展点。
func Init() error {
	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
