package queue

// IncidentAlertMessage 事件告警任务消息，worker 消费后发短信
type IncidentAlertMessage struct {
	MessageID   string `json:"message_id"` // 消息唯一ID，用于幂等性检查
	IncidentID  int64  `json:"incident_id"`
	AnimalID    int64  `json:"animal_id"`
	AnimalName  string `json:"animal_name"`
	Type        string `json:"type"` // injury | security
	Description string `json:"description"`
	OccurredAt  string `json:"occurred_at"`
}

// RoundReminderMessage 巡查提醒消息（延迟投递）
type RoundReminderMessage struct {
	MessageID    string `json:"message_id"`
	BatchID      string `json:"batch_id"`
	RoundDate    string `json:"round_date"`
	Shift        string `json:"shift"`
	Section      string `json:"section"`
	ScheduledAt  string `json:"scheduled_at"`
	DelaySeconds int    `json:"delay_seconds"`
}

// EventMessage 事件消息（用于事件总线）
type EventMessage struct {
	Payload    map[string]interface{} `json:"payload"`
	EventKey   string                 `json:"event_key"`
	EventType  string                 `json:"event_type"`
	OccurredAt string                 `json:"occurred_at"`
}
