package handler

import (
	"bytes"
	"encoding/json"
	"testing"

	hzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/require"

	"StudioLeads/internal/middleware"
	"StudioLeads/internal/model/dto"
	"StudioLeads/pkg/mail"
)

func newContactEngine(t *testing.T) *route.Engine {
	t.Helper()
	require.NoError(t, mail.Init())

	h := route.NewEngine(hzconfig.NewOptions([]hzconfig.Option{}))
	h.Use(middleware.PublicCORSMiddleware())
	h.Any("/api/contact", HandleContact)
	return h
}

func postContact(t *testing.T, h *route.Engine, payload map[string]string) *ut.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	return ut.PerformRequest(h, "POST", "/api/contact",
		&ut.Body{Body: bytes.NewBuffer(body), Len: len(body)},
		ut.Header{Key: "Content-Type", Value: "application/json"},
	)
}

func decodeContactError(t *testing.T, body []byte) dto.ContactErrorResponse {
	t.Helper()
	var resp dto.ContactErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestContactRejectsNonPostMethods(t *testing.T) {
	h := newContactEngine(t)

	for _, method := range []string{"GET", "PUT", "DELETE", "PATCH"} {
		w := ut.PerformRequest(h, method, "/api/contact", nil)
		resp := w.Result()
		require.Equal(t, 405, resp.StatusCode(), "method %s", method)

		errResp := decodeContactError(t, resp.Body())
		require.Equal(t, "Method not allowed", errResp.Error)
	}
}

func TestContactPreflightReturns200(t *testing.T) {
	h := newContactEngine(t)

	w := ut.PerformRequest(h, "OPTIONS", "/api/contact", nil)
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())
	require.Equal(t, "*", string(resp.Header.Peek("Access-Control-Allow-Origin")))
}

func TestContactMissingRequiredFields(t *testing.T) {
	h := newContactEngine(t)

	cases := []map[string]string{
		{"email": "asha@x.com", "message": "hi"},
		{"name": "Asha", "message": "hi"},
		{"name": "Asha", "email": "asha@x.com"},
		{},
	}
	for _, payload := range cases {
		w := postContact(t, h, payload)
		resp := w.Result()
		require.Equal(t, 400, resp.StatusCode())

		errResp := decodeContactError(t, resp.Body())
		require.Equal(t, "Missing required fields", errResp.Error)
	}
}

func TestContactInvalidEmail(t *testing.T) {
	h := newContactEngine(t)

	w := postContact(t, h, map[string]string{
		"name":    "Asha",
		"email":   "bad-email",
		"message": "hi",
	})
	resp := w.Result()
	require.Equal(t, 400, resp.StatusCode())

	errResp := decodeContactError(t, resp.Body())
	require.Equal(t, "Invalid email format", errResp.Error)
}

func TestHealthCheck(t *testing.T) {
	h := route.NewEngine(hzconfig.NewOptions([]hzconfig.Option{}))
	h.GET("/healthz", HealthCheck)

	w := ut.PerformRequest(h, "GET", "/healthz", nil)
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())
	require.Contains(t, string(resp.Body()), `"ok"`)
}
