package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"StudioLeads/internal/model"
	"StudioLeads/internal/repository"
	pkgerrors "StudioLeads/pkg/errors"
	"StudioLeads/storage/localstore"
)

func newTestAdminService(t *testing.T) (*AdminService, *repository.SubmissionRepository) {
	t.Helper()
	store, err := localstore.NewStore(t.TempDir())
	require.NoError(t, err)
	repo := repository.NewSubmissionRepository(store, "contact_submissions")
	return NewAdminService(repo), repo
}

func seedSubmissions(t *testing.T, repo *repository.SubmissionRepository) {
	t.Helper()
	ctx := context.Background()
	seeds := []model.ContactSubmission{
		{ID: "1", FirstName: "Asha", LastName: "Rao", Email: "asha@x.com", Business: "Rao Clinic", Location: "Pune", Timestamp: "2026-08-20T10:00:00+05:30", Status: model.StatusNew},
		{ID: "2", FirstName: "Vikram", LastName: "Joshi", Email: "vikram@joshi.in", Business: "Joshi Traders", Location: "Mumbai", Message: "Need an online store", Timestamp: "2026-08-21T11:30:00+05:30", Status: model.StatusContacted},
		{ID: "3", FirstName: "Meera", LastName: "Nair", Email: "meera@nairlaw.com", Business: "Nair Law", Location: "Bangalore", Timestamp: "2026-08-22T09:15:00+05:30", Status: model.StatusClosed},
	}
	for _, sub := range seeds {
		require.NoError(t, repo.Prepend(ctx, sub))
	}
}

func TestAdminListSearchIsCaseInsensitive(t *testing.T) {
	svc, repo := newTestAdminService(t)
	seedSubmissions(t, repo)
	ctx := context.Background()

	items := svc.List(ctx, "RAO", "")
	require.Len(t, items, 1)
	require.Equal(t, "1", items[0].ID)

	// 留言字段也参与搜索
	items = svc.List(ctx, "online store", "")
	require.Len(t, items, 1)
	require.Equal(t, "2", items[0].ID)
}

func TestAdminListStatusFilterAndsWithSearch(t *testing.T) {
	svc, repo := newTestAdminService(t)
	seedSubmissions(t, repo)
	ctx := context.Background()

	require.Len(t, svc.List(ctx, "", model.StatusContacted), 1)

	// 搜索命中但状态不符 -> 空
	require.Empty(t, svc.List(ctx, "rao", model.StatusClosed))

	// 两个条件同时命中
	items := svc.List(ctx, "joshi", model.StatusContacted)
	require.Len(t, items, 1)
	require.Equal(t, "2", items[0].ID)
}

func TestAdminStatusCounts(t *testing.T) {
	svc, repo := newTestAdminService(t)
	seedSubmissions(t, repo)

	counts := svc.StatusCounts(context.Background())
	require.Equal(t, 1, counts["new"])
	require.Equal(t, 0, counts["viewed"])
	require.Equal(t, 1, counts["contacted"])
	require.Equal(t, 1, counts["closed"])
}

func TestAdminUpdateStatusAllowsBackwardTransition(t *testing.T) {
	svc, repo := newTestAdminService(t)
	seedSubmissions(t, repo)
	ctx := context.Background()

	// closed -> contacted：数据层不限制流转方向
	sub, err := svc.UpdateStatus(ctx, "3", model.StatusContacted)
	require.NoError(t, err)
	require.Equal(t, model.StatusContacted, sub.Status)
}

func TestAdminDelete(t *testing.T) {
	svc, repo := newTestAdminService(t)
	seedSubmissions(t, repo)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "2"))
	require.Len(t, svc.List(ctx, "", ""), 2)

	require.ErrorIs(t, svc.Delete(ctx, "2"), pkgerrors.SubmissionNotFound)
}

func TestAdminExportCSV(t *testing.T) {
	svc, repo := newTestAdminService(t)
	seedSubmissions(t, repo)
	ctx := context.Background()

	csv := svc.ExportCSV(ctx)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, `"Date","Name","Email","Business","Location","Service","Budget","Phone","Status","Message"`, lines[0])

	// 最新在前：ID 3 是最后插入的
	require.Contains(t, lines[1], `"Meera Nair"`)
	require.Contains(t, lines[1], `"2026-08-22 09:15"`)
}

func TestAdminExportCSVDoublesInternalQuotes(t *testing.T) {
	svc, repo := newTestAdminService(t)
	ctx := context.Background()

	require.NoError(t, repo.Prepend(ctx, model.ContactSubmission{
		ID:        "q",
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@x.com",
		Business:  `The "Best" Clinic`,
		Location:  "Pune",
		Timestamp: "2026-08-22T09:15:00+05:30",
		Status:    model.StatusNew,
	}))

	csv := svc.ExportCSV(ctx)
	require.Contains(t, csv, `"The ""Best"" Clinic"`)
}

func TestAdminExportCSVKeepsRawTimestampOnParseFailure(t *testing.T) {
	svc, repo := newTestAdminService(t)
	ctx := context.Background()

	require.NoError(t, repo.Prepend(ctx, model.ContactSubmission{
		ID: "bad", FirstName: "A", LastName: "B", Email: "a@b.co",
		Business: "X", Location: "Pune", Timestamp: "yesterday", Status: model.StatusNew,
	}))

	require.Contains(t, svc.ExportCSV(ctx), `"yesterday"`)
}

func TestAdminExportIgnoresFilters(t *testing.T) {
	svc, repo := newTestAdminService(t)
	seedSubmissions(t, repo)
	ctx := context.Background()

	// 导出永远是全量，与 List 的过滤条件无关
	require.Len(t, svc.List(ctx, "rao", ""), 1)
	lines := strings.Split(strings.TrimRight(svc.ExportCSV(ctx), "\n"), "\n")
	require.Len(t, lines, 4)
}
