package config

import (
	"log"
	"net"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ConsolePort string `env:"CONSOLE_PORT" envDefault:"8889"`
	ConsoleHost string `env:"CONSOLE_HOST" envDefault:"127.0.0.1"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"studioleads"`
	SiteName    string `env:"SITE_NAME" envDefault:"PixelPulse Studio"`

	// SMTP 配置，发件账号同时是内部通知的收件箱
	SMTPHost           string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort           string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername       string `env:"SMTP_USERNAME"`
	SMTPPassword       string `env:"SMTP_PASSWORD"`
	SMTPTimeoutSeconds int    `env:"SMTP_TIMEOUT_SECONDS" envDefault:"10"`
	NotifyRecipient    string `env:"NOTIFY_RECIPIENT"` // 为空时回退到 SMTP_USERNAME

	// 本地提交存储配置（控制台进程私有，单文档全量重写）
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	SubmissionsKey string `env:"SUBMISSIONS_KEY" envDefault:"contact_submissions"`

	// 捕获管线的远端通知端点，尽力而为，不参与成功判定
	NotifyEndpoint string `env:"NOTIFY_ENDPOINT" envDefault:"http://127.0.0.1:8888/api/contact"`

	// 管理台配置，共享明文口令只是门槛不是安全边界
	AdminPassword string `env:"ADMIN_PASSWORD"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"studioleads-console-session"`
	CSRFSecret    string `env:"CSRF_SECRET" envDefault:"studioleads-console-csrf"`

	// Redis 配置，仅公共端点限流使用
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"sdl"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	TracingSampler float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`

	// 速率限制配置, 配置在中间件内
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPM     int  `env:"RATE_LIMIT_RPM" envDefault:"10"` // 每 IP 每分钟的提交数
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

// validateConfig 只做降级提示，缺配置不应让捕获功能跟着一起挂
func validateConfig() {
	if Cfg.SMTPUsername == "" || Cfg.SMTPPassword == "" {
		log.Printf("WARN: SMTP_USERNAME/SMTP_PASSWORD not set, email notification will fail (leads are still captured locally)")
	}

	if Cfg.AdminPassword == "" {
		log.Printf("WARN: ADMIN_PASSWORD is not set, console login is disabled")
	}

	if Cfg.IsProduction() && Cfg.SessionSecret == "studioleads-console-session" {
		log.Printf("WARN: SESSION_SECRET is using the default value in production")
	}
}

// NotifyTo 内部通知的收件人，默认回退到 SMTP 账号自身
func (c *Config) NotifyTo() string {
	if c.NotifyRecipient != "" {
		return c.NotifyRecipient
	}
	return c.SMTPUsername
}

func (c *Config) SMTPAddr() string {
	return net.JoinHostPort(c.SMTPHost, c.SMTPPort)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
