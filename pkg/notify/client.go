package notify

import (
	"context"
	"encoding/json"
	"sync"

	hzclient "github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"StudioLeads/config"
	"StudioLeads/internal/model/dto"
)

// Result 一次远端通知尝试的结果。
// 捕获管线只拿它写日志和指标，绝不用它决定成功与否。
type Result struct {
	Delivered  bool
	StatusCode int
	Err        error
}

// Client 通知端点客户端接口
type Client interface {
	// Post 把原始表单值投递到通知函数
	Post(ctx context.Context, req dto.ContactRequest) Result
}

var (
	notifyClient Client
	notifyOnce   sync.Once
	notifyErr    error
)

// Init 初始化全局通知客户端
func Init() error {
	notifyOnce.Do(func() {
		notifyClient, notifyErr = NewHTTPClient(config.Cfg.NotifyEndpoint)
	})
	return notifyErr
}

// Ready 通知客户端是否可用，捕获管线按它决定是否投递
func Ready() bool {
	return notifyClient != nil
}

func GetClient() Client {
	if notifyClient == nil {
		panic("notify client not initialized, call notify.Init() first")
	}
	return notifyClient
}

// HTTPClient 基于 Hertz client 的实现
type HTTPClient struct {
	endpoint string
	client   *hzclient.Client
}

func NewHTTPClient(endpoint string) (*HTTPClient, error) {
	c, err := hzclient.NewClient()
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		endpoint: endpoint,
		client:   c,
	}, nil
}

func (h *HTTPClient) Post(ctx context.Context, payload dto.ContactRequest) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Err: err}
	}

	req := &protocol.Request{}
	res := &protocol.Response{}
	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(h.endpoint)
	req.SetBody(body)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	if err := h.client.Do(ctx, req, res); err != nil {
		return Result{Err: err}
	}

	status := res.StatusCode()
	return Result{
		Delivered:  status == consts.StatusOK,
		StatusCode: status,
	}
}
