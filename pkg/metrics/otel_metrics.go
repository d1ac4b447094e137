package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 巡查相关指标
	RoundSessionsOpenedTotal metric.Int64Counter
	RoundsSignedOffTotal     metric.Int64Counter
	IncidentsEmittedTotal    metric.Int64Counter
	IssueReportsTotal        metric.Int64Counter

	// 短信告警相关指标
	SMSSentTotal    metric.Int64Counter
	SMSSendDuration metric.Float64Histogram
	SMSRetryTotal   metric.Int64Counter
}

var (
	// 全局指标实例
	metrics *OTelMetrics
	// meter 用于创建指标
	meter = otel.Meter("allwell")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	// 巡查相关指标
	metrics.RoundSessionsOpenedTotal, err = meter.Int64Counter(
		"round_sessions_opened_total",
		metric.WithDescription("Total number of round sessions opened"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return err
	}

	metrics.RoundsSignedOffTotal, err = meter.Int64Counter(
		"rounds_signed_off_total",
		metric.WithDescription("Total number of rounds signed off"),
		metric.WithUnit("{round}"),
	)
	if err != nil {
		return err
	}

	metrics.IncidentsEmittedTotal, err = meter.Int64Counter(
		"incidents_emitted_total",
		metric.WithDescription("Total number of incidents emitted at sign-off"),
		metric.WithUnit("{incident}"),
	)
	if err != nil {
		return err
	}

	metrics.IssueReportsTotal, err = meter.Int64Counter(
		"issue_reports_total",
		metric.WithDescription("Total number of confirmed issue reports"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return err
	}

	// 短信相关指标
	metrics.SMSSentTotal, err = meter.Int64Counter(
		"sms_sent_total",
		metric.WithDescription("Total number of SMS sent"),
		metric.WithUnit("{sms}"),
	)
	if err != nil {
		return err
	}

	metrics.SMSSendDuration, err = meter.Float64Histogram(
		"sms_send_duration_seconds",
		metric.WithDescription("Time spent sending SMS in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.SMSRetryTotal, err = meter.Int64Counter(
		"sms_retry_total",
		metric.WithDescription("Total number of SMS retry attempts"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics 获取全局指标实例
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordSessionOpened 记录巡查会话打开
func (m *OTelMetrics) RecordSessionOpened(ctx context.Context, section, mode string) {
	m.RoundSessionsOpenedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("section", section),
		attribute.String("mode", mode),
	))
}

// RecordRoundSignedOff 记录巡查签收
func (m *OTelMetrics) RecordRoundSignedOff(ctx context.Context, shift, section string, issuesFound int64) {
	attrs := []attribute.KeyValue{
		attribute.String("shift", shift),
		attribute.String("section", section),
	}

	m.RoundsSignedOffTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	if issuesFound > 0 {
		m.IncidentsEmittedTotal.Add(ctx, issuesFound, metric.WithAttributes(attrs...))
	}
}

// RecordIssueReport 记录异常上报确认
func (m *OTelMetrics) RecordIssueReport(ctx context.Context, kind, section string) {
	m.IssueReportsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("section", section),
	))
}

// RecordSMSSent 记录短信发送结果
func (m *OTelMetrics) RecordSMSSent(ctx context.Context, template, provider, status string, duration float64) {
	m.SMSSentTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("template", template),
		attribute.String("status", status),
		attribute.String("provider", provider),
	))
	m.SMSSendDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("template", template),
		attribute.String("provider", provider),
	))
}

// RecordSMSRetry 记录短信重试
func (m *OTelMetrics) RecordSMSRetry(ctx context.Context, template, reason string) {
	m.SMSRetryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("template", template),
		attribute.String("retry_reason", reason),
	))
}
