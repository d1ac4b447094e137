package rounds

// CheckState 单只动物在一轮巡查中的检查状态
//
// Alive 三态：nil 表示本轮尚未评估，true/false 是明确结论。
// HealthIssue 仅在 Alive 为 false 时非空；SecurityIssue 仅在主动
// 报告围栏故障（从 secure 降级）时非空，"尚未检查" 不算故障。
type CheckState struct {
	Alive         *bool  `json:"is_alive,omitempty"`
	Watered       bool   `json:"is_watered"`
	Secure        bool   `json:"is_secure"`
	HealthIssue   string `json:"health_issue,omitempty"`
	SecurityIssue string `json:"security_issue,omitempty"`
}

// FlaggedDead 健康开关已降级，本轮不再处理该动物
func (c CheckState) FlaggedDead() bool {
	return c.Alive != nil && !*c.Alive
}

// HasSecurityIssue 围栏故障已记录
func (c CheckState) HasSecurityIssue() bool {
	return c.SecurityIssue != ""
}

// Flagged 该动物会在签字时产生事件记录
func (c CheckState) Flagged() bool {
	return c.FlaggedDead() || c.HasSecurityIssue()
}

// Complete 按分区规则判断该动物是否算检查完成
//
// 已降级健康的动物视为 "已处理"。鸟类分区只要求围栏确认或故障
// 已记录；其余分区额外要求饮水已确认。
func (c CheckState) Complete(section Section) bool {
	if c.FlaggedDead() {
		return true
	}

	secured := c.Secure || c.HasSecurityIssue()
	if section.IsAvian() {
		return secured
	}
	return secured && c.Watered
}
