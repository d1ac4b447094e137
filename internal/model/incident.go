package model

import "time"

// IncidentStatus 事件处理状态枚举
type IncidentStatus string

const (
	IncidentStatusOpen         IncidentStatus = "open"
	IncidentStatusAcknowledged IncidentStatus = "acknowledged"
	IncidentStatusResolved     IncidentStatus = "resolved"
)

// IncidentSeverity 事件严重级别，巡查派生的事件固定为 high
type IncidentSeverity string

const (
	IncidentSeverityHigh IncidentSeverity = "high"
)

// Incident 事件记录模型，签字时由 CheckState 自动派生
type Incident struct {
	BaseModel
	PublicID      int64            `gorm:"uniqueIndex;not null" json:"public_id"`
	AnimalID      int64            `gorm:"not null;index:idx_incidents_animal" json:"animal_id"`
	AnimalName    string           `gorm:"type:varchar(64);not null;default:''" json:"animal_name"`
	RoundRecordID int64            `gorm:"not null;index:idx_incidents_round" json:"round_record_id"`
	IncidentDate  time.Time        `gorm:"type:date;not null;index:idx_incidents_date" json:"incident_date"`
	IncidentTime  time.Time        `gorm:"type:timestamptz;not null" json:"incident_time"`
	Type          string           `gorm:"type:varchar(16);not null" json:"type"` // injury | security
	Description   string           `gorm:"type:text;not null" json:"description"`
	Severity      IncidentSeverity `gorm:"type:varchar(16);not null;default:'high'" json:"severity"`
	Status        IncidentStatus   `gorm:"type:varchar(16);not null;default:'open';index:idx_incidents_status" json:"status"`
	ReportedBy    string           `gorm:"type:varchar(8);not null" json:"reported_by"`
}

// TableName 指定表名
func (Incident) TableName() string {
	return "incidents"
}

// CanTransitionTo 事件状态只能单向推进 open → acknowledged → resolved
func (i *Incident) CanTransitionTo(next IncidentStatus) bool {
	switch i.Status {
	case IncidentStatusOpen:
		return next == IncidentStatusAcknowledged || next == IncidentStatusResolved
	case IncidentStatusAcknowledged:
		return next == IncidentStatusResolved
	default:
		return false
	}
}
