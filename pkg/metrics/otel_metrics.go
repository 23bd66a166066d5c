package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics 业务指标集合
type OTelMetrics struct {
	// 线索捕获指标
	SubmissionsCapturedTotal metric.Int64Counter
	SubmissionsDeletedTotal  metric.Int64Counter
	StoreRewriteDuration     metric.Float64Histogram

	// 邮件通知指标
	EmailsSentTotal     metric.Int64Counter
	EmailsFailedTotal   metric.Int64Counter
	EmailSendDuration   metric.Float64Histogram
	NotifyAttemptsTotal metric.Int64Counter
}

var (
	metrics     *OTelMetrics
	metricsOnce sync.Once
	meter       = otel.Meter("studioleads")
)

// InitMetrics 初始化业务指标
func InitMetrics() error {
	var err error

	metricsOnce.Do(func() {
		m := &OTelMetrics{}

		if m.SubmissionsCapturedTotal, err = meter.Int64Counter(
			"submissions_captured_total",
			metric.WithDescription("Total number of contact submissions captured locally"),
			metric.WithUnit("{submission}"),
		); err != nil {
			return
		}

		if m.SubmissionsDeletedTotal, err = meter.Int64Counter(
			"submissions_deleted_total",
			metric.WithDescription("Total number of submissions deleted from the console"),
			metric.WithUnit("{submission}"),
		); err != nil {
			return
		}

		if m.StoreRewriteDuration, err = meter.Float64Histogram(
			"store_rewrite_duration_seconds",
			metric.WithDescription("Time spent rewriting the local submission store"),
			metric.WithUnit("s"),
		); err != nil {
			return
		}

		if m.EmailsSentTotal, err = meter.Int64Counter(
			"emails_sent_total",
			metric.WithDescription("Total number of notification emails sent"),
			metric.WithUnit("{email}"),
		); err != nil {
			return
		}

		if m.EmailsFailedTotal, err = meter.Int64Counter(
			"emails_failed_total",
			metric.WithDescription("Total number of notification emails that failed to send"),
			metric.WithUnit("{email}"),
		); err != nil {
			return
		}

		if m.EmailSendDuration, err = meter.Float64Histogram(
			"email_send_duration_seconds",
			metric.WithDescription("Time spent sending a notification email"),
			metric.WithUnit("s"),
		); err != nil {
			return
		}

		if m.NotifyAttemptsTotal, err = meter.Int64Counter(
			"notify_attempts_total",
			metric.WithDescription("Best-effort remote notification attempts from the capture pipeline"),
			metric.WithUnit("{attempt}"),
		); err != nil {
			return
		}

		metrics = m
	})

	return err
}

// GetMetrics 返回全局指标实例，未初始化时为 nil
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordSubmissionCaptured 记录一次线索捕获
func RecordSubmissionCaptured(source string) {
	if m := GetMetrics(); m != nil {
		m.SubmissionsCapturedTotal.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("source", source)))
	}
}

// RecordSubmissionDeleted 记录一次删除
func RecordSubmissionDeleted() {
	if m := GetMetrics(); m != nil {
		m.SubmissionsDeletedTotal.Add(context.Background(), 1)
	}
}

// RecordStoreRewrite 记录一次全量重写耗时
func RecordStoreRewrite(seconds float64) {
	if m := GetMetrics(); m != nil {
		m.StoreRewriteDuration.Record(context.Background(), seconds)
	}
}

// RecordEmailSent 记录邮件发送成功
func RecordEmailSent(kind string, seconds float64) {
	if m := GetMetrics(); m != nil {
		attrs := metric.WithAttributes(attribute.String("kind", kind))
		m.EmailsSentTotal.Add(context.Background(), 1, attrs)
		m.EmailSendDuration.Record(context.Background(), seconds, attrs)
	}
}

// RecordEmailFailed 记录邮件发送失败
func RecordEmailFailed(kind string, seconds float64) {
	if m := GetMetrics(); m != nil {
		attrs := metric.WithAttributes(attribute.String("kind", kind))
		m.EmailsFailedTotal.Add(context.Background(), 1, attrs)
		m.EmailSendDuration.Record(context.Background(), seconds, attrs)
	}
}

// RecordNotifyAttempt 记录捕获管线的一次远端通知尝试
func RecordNotifyAttempt(delivered bool) {
	if m := GetMetrics(); m != nil {
		m.NotifyAttemptsTotal.Add(context.Background(), 1,
			metric.WithAttributes(attribute.Bool("delivered", delivered)))
	}
}
