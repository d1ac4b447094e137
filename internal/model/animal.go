package model

// Animal 动物名册模型
//
// Section 同时是动物类别（Owls/Raptors/...），决定巡查完成规则。
// Archived 的动物不进入巡查名单。
type Animal struct {
	BaseModel
	PublicID int64  `gorm:"uniqueIndex;not null" json:"public_id"`
	Name     string `gorm:"type:varchar(64);not null" json:"name"`
	Species  string `gorm:"type:varchar(64);not null;default:''" json:"species"`
	Section  string `gorm:"type:varchar(32);not null;index:idx_animals_section" json:"section"`
	Archived bool   `gorm:"not null;default:false;index:idx_animals_section" json:"archived"`
}

// TableName 指定表名
func (Animal) TableName() string {
	return "animals"
}
