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
	"StudioLeads/pkg/metrics"
	"StudioLeads/pkg/notify"
	"StudioLeads/pkg/otel"
	"StudioLeads/pkg/snowflake"
	"StudioLeads/storage"
)

// 运营控制台：持有本地提交存储，承接捕获管线与管理台 API。
// 通知端点对它而言是尽力而为的下游，不可用不影响线索落盘。
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

	if config.Cfg.TracingEnabled {
		shutdown, err := otel.InitOpenTelemetry(ctx, otel.Config{
			ServiceName:  config.Cfg.ServiceName + "-console",
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

	// 本地提交存储是控制台的核心依赖，起不来就没必要起服务
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	// 通知客户端不可用时只告警，捕获管线照常工作
	if err := notify.Init(); err != nil {
		logger.Logger.Warn("Failed to initialize notify client", zap.Error(err))
		logger.Logger.Info("Remote notification disabled, leads are still captured locally")
	}
	service.Capture()
	service.Admin()

	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	logger.Logger.Info("Console starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ConsolePort),
		zap.String("environment", config.Cfg.Environment),
	)

	addr := net.JoinHostPort(config.Cfg.ConsoleHost, config.Cfg.ConsolePort)

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

	router.RegisterConsole(h)

	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("Console listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Console shutting down gracefully")
}
