package storage

import (
	"StudioLeads/storage/localstore"
)

// Init 初始化控制台侧的本地存储。
// Redis 只服务公共端点的限流，由 cmd/server 自行（可降级地）初始化。
func Init() error {
	if err := localstore.Init(); err != nil {
		return err
	}

	return nil
}
