package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONB 通用 jsonb 字段
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value")
	}
	return json.Unmarshal(bytes, j)
}

// NotificationTaskStatus 通知任务状态枚举
type NotificationTaskStatus string

const (
	NotificationTaskStatusPending NotificationTaskStatus = "pending" // 待处理
	NotificationTaskStatusSuccess NotificationTaskStatus = "success" // 成功
	NotificationTaskStatusFailed  NotificationTaskStatus = "failed"  // 失败
)

// NotificationTask 告警通知任务，worker 发送短信后落库留痕
type NotificationTask struct {
	BaseModel
	TaskCode    int64                  `gorm:"uniqueIndex;not null" json:"task_code"`
	IncidentID  int64                  `gorm:"not null;index:idx_notification_tasks_incident" json:"incident_id"`
	Category    string                 `gorm:"type:varchar(32);not null" json:"category"` // incident_alert | round_reminder
	Payload     JSONB                  `gorm:"type:jsonb;not null" json:"payload"`
	Recipients  int                    `gorm:"not null;default:0" json:"recipients"`
	Status      NotificationTaskStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_notification_tasks_status" json:"status"`
	RetryCount  int                    `gorm:"type:smallint;not null;default:0" json:"retry_count"`
	ProcessedAt *time.Time             `gorm:"type:timestamptz" json:"processed_at,omitempty"`
}

// TableName 指定表名
func (NotificationTask) TableName() string {
	return "notification_tasks"
}
