package metrics

import (
	"context"
)

// 包级辅助函数，调用方不必关心全局实例是否已初始化。

// RecordSessionOpened 记录巡查会话打开
func RecordSessionOpened(section, mode string) {
	if m := GetMetrics(); m != nil {
		m.RecordSessionOpened(context.Background(), section, mode)
	}
}

// RecordRoundSignedOff 记录巡查签收及派生事件数
func RecordRoundSignedOff(shift, section string, issuesFound int) {
	if m := GetMetrics(); m != nil {
		m.RecordRoundSignedOff(context.Background(), shift, section, int64(issuesFound))
	}
}

// RecordIssueReport 记录异常上报确认
func RecordIssueReport(kind, section string) {
	if m := GetMetrics(); m != nil {
		m.RecordIssueReport(context.Background(), kind, section)
	}
}

// RecordSMSSent 记录短信发送成功
func RecordSMSSent(template, provider string, duration float64) {
	if m := GetMetrics(); m != nil {
		m.RecordSMSSent(context.Background(), template, provider, "success", duration)
	}
}

// RecordSMSFailed 记录短信发送失败
func RecordSMSFailed(template, provider string, duration float64) {
	if m := GetMetrics(); m != nil {
		m.RecordSMSSent(context.Background(), template, provider, "failed", duration)
	}
}

// RecordSMSRetry 记录短信重试
func RecordSMSRetry(template, reason string) {
	if m := GetMetrics(); m != nil {
		m.RecordSMSRetry(context.Background(), template, reason)
	}
}
