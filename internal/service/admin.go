package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"StudioLeads/internal/model"
	"StudioLeads/internal/repository"
	"StudioLeads/pkg/logger"
	"StudioLeads/pkg/metrics"
)

var (
	adminService *AdminService
	adminOnce    sync.Once
)

func Admin() *AdminService {
	adminOnce.Do(func() {
		adminService = NewAdminService(repository.Submissions())
	})
	return adminService
}

// AdminService 管理台对本地提交集合的读写。
// 单写者单读者，没有并发模型，每次变更都是全量重写。
type AdminService struct {
	repo *repository.SubmissionRepository
}

func NewAdminService(repo *repository.SubmissionRepository) *AdminService {
	return &AdminService{repo: repo}
}

// List 文本搜索与状态过滤取交集。
// query 在 姓名/邮箱/公司/留言 四个字段上做大小写不敏感的子串匹配。
func (s *AdminService) List(ctx context.Context, query string, status model.SubmissionStatus) []model.ContactSubmission {
	subs := s.repo.List(ctx)

	if query == "" && status == "" {
		return subs
	}

	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]model.ContactSubmission, 0, len(subs))
	for _, sub := range subs {
		if status != "" && sub.Status != status {
			continue
		}
		if q != "" && !matchesQuery(sub, q) {
			continue
		}
		filtered = append(filtered, sub)
	}

	return filtered
}

// StatusCounts 各状态的数量，给仪表盘表头用
func (s *AdminService) StatusCounts(ctx context.Context) map[string]int {
	counts := map[string]int{
		string(model.StatusNew):       0,
		string(model.StatusViewed):    0,
		string(model.StatusContacted): 0,
		string(model.StatusClosed):    0,
	}
	for _, sub := range s.repo.List(ctx) {
		counts[string(sub.Status)]++
	}
	return counts
}

// UpdateStatus 修改一条提交的状态。
// 方向不做校验：closed 也可以再标 contacted，UI 层自己管按钮。
func (s *AdminService) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus) (*model.ContactSubmission, error) {
	sub, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	logger.Logger.Info("Submission status updated",
		zap.String("id", id),
		zap.String("status", string(status)),
	)
	return sub, nil
}

// Delete 按 ID 删除一条提交
func (s *AdminService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.RecordSubmissionDeleted()
	logger.Logger.Info("Submission deleted", zap.String("id", id))
	return nil
}

// ExportCSV 导出完整的未过滤列表。
// 固定列序，所有字段一律双引号包裹，内部引号翻倍——与前端导出保持字节级兼容。
func (s *AdminService) ExportCSV(ctx context.Context) string {
	var sb strings.Builder

	writeRow := func(fields ...string) {
		for i, f := range fields {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`"`)
			sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
			sb.WriteString(`"`)
		}
		sb.WriteString("\n")
	}

	writeRow("Date", "Name", "Email", "Business", "Location", "Service", "Budget", "Phone", "Status", "Message")

	for _, sub := range s.repo.List(ctx) {
		writeRow(
			exportDate(sub.Timestamp),
			sub.Name(),
			sub.Email,
			sub.Business,
			sub.Location,
			sub.Service,
			sub.Budget,
			sub.Phone,
			string(sub.Status),
			sub.Message,
		)
	}

	return sb.String()
}

func matchesQuery(sub model.ContactSubmission, q string) bool {
	for _, field := range []string{sub.Name(), sub.Email, sub.Business, sub.Message} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// exportDate 时间戳解析失败时原样导出，导出不应该因脏数据中断
func exportDate(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("2006-01-02 15:04")
}
