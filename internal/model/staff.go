package model

import "time"

// StaffRole 员工角色枚举
type StaffRole string

const (
	StaffRoleKeeper  StaffRole = "keeper"  // 饲养员
	StaffRoleManager StaffRole = "manager" // 值班负责人
)

// StaffUser 员工模型
type StaffUser struct {
	BaseModel
	PublicID    int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	BadgeCode   string     `gorm:"uniqueIndex;type:varchar(32);not null" json:"badge_code"`
	PINHash     string     `gorm:"type:char(64);not null" json:"-"` // PIN 哈希，不对外暴露
	Name        string     `gorm:"type:varchar(64);not null" json:"name"`
	Initials    string     `gorm:"type:varchar(8);not null" json:"initials"`
	Role        StaffRole  `gorm:"type:varchar(16);not null;default:'keeper'" json:"role"`
	Phone       string     `gorm:"type:varchar(32);not null;default:''" json:"-"` // 告警短信接收号码
	Active      bool       `gorm:"not null;default:true;index:idx_staff_users_active" json:"active"`
	LastLoginAt *time.Time `gorm:"type:timestamptz" json:"last_login_at,omitempty"`
}

// TableName 指定表名
func (StaffUser) TableName() string {
	return "staff_users"
}
