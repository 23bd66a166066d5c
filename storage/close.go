package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"StudioLeads/pkg/logger"
	"StudioLeads/storage/redis"
)

// Close 优雅关闭外部连接。本地文档存储没有长连接，只有 Redis 需要收尾。
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Logger.Info("Closing storage connections...")

	// 控制台从不初始化 Redis，没连过就没什么可关的
	if redis.Ready() {
		if err := redis.Close(ctx); err != nil {
			logger.Logger.Error("Failed to close Redis connection", zap.Error(err))
		} else {
			logger.Logger.Info("Redis connection closed successfully")
		}
	}

	logger.Logger.Info("All storage connections closed")
}
