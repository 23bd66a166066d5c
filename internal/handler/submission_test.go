package handler

import (
	"bytes"
	"encoding/json"
	"testing"

	hzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/require"

	"StudioLeads/config"
	"StudioLeads/internal/model/dto"
	"StudioLeads/pkg/notify"
	"StudioLeads/pkg/response"
	"StudioLeads/storage/localstore"
)

func newConsoleEngine(t *testing.T) *route.Engine {
	t.Helper()

	// 单例存储指向临时目录，通知客户端照常初始化（端点不可达只降级）
	config.Cfg.DataDir = t.TempDir()
	require.NoError(t, localstore.Init())
	require.NoError(t, notify.Init())

	h := route.NewEngine(hzconfig.NewOptions([]hzconfig.Option{}))
	h.POST("/v1/submissions", CreateSubmission)
	h.GET("/v1/meta/options", GetFormOptions)
	return h
}

func postJSON(t *testing.T, h *route.Engine, path string, payload interface{}) *ut.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	return ut.PerformRequest(h, "POST", path,
		&ut.Body{Body: bytes.NewBuffer(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
}

func TestCreateSubmissionValidationError(t *testing.T) {
	h := newConsoleEngine(t)

	w := postJSON(t, h, "/v1/submissions", dto.CreateSubmissionRequest{
		FirstName: "A",
		LastName:  "Rao",
		Email:     "bad-email",
		Business:  "Rao Clinic",
		Location:  "Pune",
	})
	resp := w.Result()
	require.Equal(t, 400, resp.StatusCode())

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	require.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	require.Contains(t, body.Error.Details, "firstName")
	require.Contains(t, body.Error.Details, "email")
}

func TestCreateSubmissionSucceedsWithoutNotifyEndpoint(t *testing.T) {
	h := newConsoleEngine(t)

	// 通知端点不可达，捕获仍然成功
	w := postJSON(t, h, "/v1/submissions", dto.CreateSubmissionRequest{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@x.com",
		Business:  "Rao Clinic",
		Location:  "Pune",
	})
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())

	var body struct {
		Data dto.CreateSubmissionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	require.NotEmpty(t, body.Data.ID)
	require.NotEmpty(t, body.Data.Timestamp)
	require.Equal(t, "new", body.Data.Status)
}

func TestGetFormOptions(t *testing.T) {
	h := newConsoleEngine(t)

	w := ut.PerformRequest(h, "GET", "/v1/meta/options", nil)
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())

	var body struct {
		Data dto.OptionsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	require.Contains(t, body.Data.Services, "Web Design")
	require.Contains(t, body.Data.Budgets, "Under ₹50,000")
	require.Contains(t, body.Data.Cities, "Pune")
}
