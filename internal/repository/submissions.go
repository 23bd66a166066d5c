package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"StudioLeads/config"
	"StudioLeads/internal/model"
	pkgerrors "StudioLeads/pkg/errors"
	"StudioLeads/pkg/logger"
	"StudioLeads/pkg/metrics"
	"StudioLeads/storage/localstore"
)

// SubmissionRepository 本地文档存储上的提交集合。
// 集合是固定 key 下的一个 JSON 数组，最新在前，任何变更都整体重写。
type SubmissionRepository struct {
	store *localstore.Store
	key   string
}

var (
	defaultRepo *SubmissionRepository
	repoOnce    sync.Once
)

// Submissions 默认仓库，从全局配置与默认存储装配
func Submissions() *SubmissionRepository {
	repoOnce.Do(func() {
		defaultRepo = NewSubmissionRepository(localstore.Default(), config.Cfg.SubmissionsKey)
	})
	return defaultRepo
}

func NewSubmissionRepository(store *localstore.Store, key string) *SubmissionRepository {
	return &SubmissionRepository{store: store, key: key}
}

// List 读取全部提交。key 不存在或文档解析失败都按空集合处理，
// 只留一条告警日志，绝不把解析错误抛给调用方。
func (r *SubmissionRepository) List(ctx context.Context) []model.ContactSubmission {
	data, ok, err := r.store.Get(r.key)
	if err != nil {
		logger.Logger.Warn("Failed to read submission store, treating as empty",
			zap.String("key", r.key),
			zap.Error(err),
		)
		return []model.ContactSubmission{}
	}
	if !ok {
		return []model.ContactSubmission{}
	}

	var subs []model.ContactSubmission
	if err := json.Unmarshal(data, &subs); err != nil {
		logger.Logger.Warn("Submission store is corrupt, treating as empty",
			zap.String("key", r.key),
			zap.Error(err),
		)
		return []model.ContactSubmission{}
	}

	return subs
}

// Prepend 把新提交放到列表头部并整体重写
func (r *SubmissionRepository) Prepend(ctx context.Context, sub model.ContactSubmission) error {
	subs := r.List(ctx)
	subs = append([]model.ContactSubmission{sub}, subs...)
	return r.rewrite(subs)
}

// UpdateStatus 修改指定提交的状态，其余字段不动
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus) (*model.ContactSubmission, error) {
	if !model.ValidStatus(status) {
		return nil, pkgerrors.StatusInvalid
	}

	subs := r.List(ctx)
	for i := range subs {
		if subs[i].ID == id {
			subs[i].Status = status
			if err := r.rewrite(subs); err != nil {
				return nil, err
			}
			return &subs[i], nil
		}
	}

	return nil, pkgerrors.SubmissionNotFound
}

// Delete 按 ID 删除一条提交
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	subs := r.List(ctx)

	next := make([]model.ContactSubmission, 0, len(subs))
	found := false
	for _, sub := range subs {
		if sub.ID == id {
			found = true
			continue
		}
		next = append(next, sub)
	}

	if !found {
		return pkgerrors.SubmissionNotFound
	}

	return r.rewrite(next)
}

func (r *SubmissionRepository) rewrite(subs []model.ContactSubmission) error {
	start := time.Now()

	data, err := json.Marshal(subs)
	if err != nil {
		return err
	}

	if err := r.store.Set(r.key, data); err != nil {
		logger.Logger.Error("Failed to rewrite submission store",
			zap.String("key", r.key),
			zap.Int("count", len(subs)),
			zap.Error(err),
		)
		return pkgerrors.StoreWriteFailed
	}

	metrics.RecordStoreRewrite(time.Since(start).Seconds())
	return nil
}
