package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	hzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"go.uber.org/zap"

	"StudioLeads/config"
	"StudioLeads/internal/middleware"
	"StudioLeads/internal/router"
	"StudioLeads/internal/service"
	"StudioLeads/pkg/logger"
	"StudioLeads/pkg/mail"
	"StudioLeads/pkg/metrics"
	"StudioLeads/pkg/otel"
	"StudioLeads/storage/redis"
)

// 公共通知 API：接收联络表单提交并发送通知邮件与自动回复。
// 不落任何服务端业务数据，Redis 只用于限流且可降级。
func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	// OpenTelemetry 可选开启
	if config.Cfg.TracingEnabled {
		shutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
			ServiceName:  config.Cfg.ServiceName + "-server",
			Environment:  config.Cfg.Environment,
			OTLPEndpoint: config.Cfg.OTLPEndpoint,
			SampleRatio:  config.Cfg.TracingSampler,
		})
		if err != nil {
			logger.Logger.Warn("Failed to initialize OpenTelemetry", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(shutdownCtx)
			}()
			if err := metrics.InitMetrics(); err != nil {
				logger.Logger.Warn("Failed to initialize business metrics", zap.Error(err))
			}
			if err := middleware.InitHTTPMetrics(); err != nil {
				logger.Logger.Warn("Failed to initialize HTTP metrics", zap.Error(err))
			}
		}
	}

	// Redis 仅服务于限流，连不上降级为不限流
	if config.Cfg.RateLimitEnabled {
		if err := redis.Init(); err != nil {
			logger.Logger.Warn("Failed to initialize Redis, rate limiting disabled", zap.Error(err))
		}
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redis.Close(closeCtx); err != nil {
			logger.Logger.Warn("Failed to close Redis", zap.Error(err))
		}
	}()

	// SMTP 客户端
	if err := mail.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize mail client", zap.Error(err))
	}
	service.Notify()

	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ServerPort),
		zap.String("environment", config.Cfg.Environment),
	)

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)

	opts := []hzconfig.Option{server.WithHostPorts(addr)}
	var tracerMw app.HandlerFunc
	if config.Cfg.TracingEnabled {
		var tracerOpt hzconfig.Option
		tracerOpt, tracerMw = middleware.NewServerTracerConfig()
		opts = append(opts, tracerOpt)
	}

	h := server.Default(opts...)
	if tracerMw != nil {
		h.Use(tracerMw)
	}

	router.RegisterServer(h)

	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
