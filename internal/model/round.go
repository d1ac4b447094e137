package model

import (
	"database/sql/driver"
	"errors"
	"time"
)

// RoundDetails 落库的 CheckState 快照原文（jsonb）
//
// 保持原始字节，解析交给 rounds.ParseDetails，损坏的快照不应让
// 整条查询失败。
type RoundDetails []byte

func (d RoundDetails) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return []byte(d), nil
}

func (d *RoundDetails) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		buf := make([]byte, len(v))
		copy(buf, v)
		*d = buf
		return nil
	case string:
		*d = RoundDetails(v)
		return nil
	default:
		return errors.New("failed to scan round details value")
	}
}

// RoundRecord 巡查记录模型，每个 (date, shift, section) 最多一条，
// 签字后不可修改
type RoundRecord struct {
	BaseModel
	PublicID       int64        `gorm:"uniqueIndex;not null" json:"public_id"`
	RoundDate      time.Time    `gorm:"type:date;not null;uniqueIndex:idx_round_records_scope" json:"round_date"`
	Shift          string       `gorm:"type:varchar(16);not null;uniqueIndex:idx_round_records_scope" json:"shift"`
	Section        string       `gorm:"type:varchar(32);not null;uniqueIndex:idx_round_records_scope" json:"section"`
	SignedBy       string       `gorm:"type:varchar(8);not null" json:"signed_by"`
	SignedByUserID int64        `gorm:"not null;index:idx_round_records_signer" json:"signed_by_user_id"`
	StaffName      string       `gorm:"type:varchar(64);not null;default:''" json:"staff_name"`
	TotalChecked   int          `gorm:"not null" json:"total_checked"`
	IssuesFound    int          `gorm:"not null" json:"issues_found"`
	GeneralNotes   string       `gorm:"type:text;not null;default:''" json:"general_notes"`
	Details        RoundDetails `gorm:"type:jsonb;not null" json:"details"`
	SignedAt       time.Time    `gorm:"type:timestamptz;not null" json:"signed_at"`
}

// TableName 指定表名
func (RoundRecord) TableName() string {
	return "round_records"
}
