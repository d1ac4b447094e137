package dto

// ========== Round 相关 DTO ==========

// OpenSessionRequest 打开巡查会话的查询参数
//
// date 为空取今天，shift 为空按当前时间推断
type OpenSessionRequest struct {
	Date    string `query:"date"`
	Shift   string `query:"shift"`
	Section string `query:"section" binding:"required"`
}

// AnimalCheckView 会话里单只动物的检查状态视图
type AnimalCheckView struct {
	AnimalID      string `json:"animal_id"`
	Name          string `json:"name"`
	IsAlive       *bool  `json:"is_alive,omitempty"`
	IsWatered     bool   `json:"is_watered"`
	IsSecure      bool   `json:"is_secure"`
	HealthIssue   string `json:"health_issue,omitempty"`
	SecurityIssue string `json:"security_issue,omitempty"`
}

// ProgressView 进度视图
type ProgressView struct {
	Total      int  `json:"total"`
	Completed  int  `json:"completed"`
	Percent    int  `json:"percent"`
	IsComplete bool `json:"is_complete"`
}

// PendingIssueView 待确认的问题报告
type PendingIssueView struct {
	AnimalID string `json:"animal_id"`
	Kind     string `json:"kind"`
}

// SessionResponse 巡查会话完整视图
type SessionResponse struct {
	Date         string            `json:"date"`
	Shift        string            `json:"shift"`
	Section      string            `json:"section"`
	Mode         string            `json:"mode"`
	Initials     string            `json:"initials"`
	SignedBy     string            `json:"signed_by,omitempty"`
	GeneralNotes string            `json:"general_notes"`
	Animals      []AnimalCheckView `json:"animals"`
	Progress     ProgressView      `json:"progress"`
	NoteRequired bool              `json:"note_required"`
	CanSignOff   bool              `json:"can_sign_off"`
	PendingIssue *PendingIssueView `json:"pending_issue,omitempty"`
}

// ToggleRequest 开关操作请求，kind 取 health/water/secure
type ToggleRequest struct {
	Date     string `json:"date"`
	Shift    string `json:"shift" binding:"required"`
	Section  string `json:"section" binding:"required"`
	AnimalID string `json:"animal_id" binding:"required"`
	Kind     string `json:"kind" binding:"required"`
}

// IssueConfirmRequest 确认问题报告请求
//
// animal_id / kind 可选，给出时必须和待确认的提示一致
type IssueConfirmRequest struct {
	Date     string `json:"date"`
	Shift    string `json:"shift" binding:"required"`
	Section  string `json:"section" binding:"required"`
	AnimalID string `json:"animal_id"`
	Kind     string `json:"kind"`
	Note     string `json:"note" binding:"required"`
}

// IssueCancelRequest 取消问题报告请求
type IssueCancelRequest struct {
	Date    string `json:"date"`
	Shift   string `json:"shift" binding:"required"`
	Section string `json:"section" binding:"required"`
}

// NotesRequest 更新分区备注请求
type NotesRequest struct {
	Date    string `json:"date"`
	Shift   string `json:"shift" binding:"required"`
	Section string `json:"section" binding:"required"`
	Notes   string `json:"notes"`
}

// SignOffRequest 签字请求，initials 为空时沿用会话当前值
type SignOffRequest struct {
	Date     string `json:"date"`
	Shift    string `json:"shift" binding:"required"`
	Section  string `json:"section" binding:"required"`
	Initials string `json:"initials"`
}

// SignOffResponse 签字结果
type SignOffResponse struct {
	RoundID       string `json:"round_id"`
	TotalChecked  int    `json:"total_checked"`
	IssuesFound   int    `json:"issues_found"`
	IncidentCount int    `json:"incident_count"`
	SignedAt      string `json:"signed_at"`
}

// RoundHistoryQuery 历史记录查询参数
type RoundHistoryQuery struct {
	Date    string `query:"date"`
	Section string `query:"section"`
	Limit   int    `query:"limit"`
	Offset  int    `query:"offset"`
}

// RoundRecordView 历史巡查记录视图
type RoundRecordView struct {
	RoundID      string `json:"round_id"`
	Date         string `json:"date"`
	Shift        string `json:"shift"`
	Section      string `json:"section"`
	SignedBy     string `json:"signed_by"`
	StaffName    string `json:"staff_name"`
	TotalChecked int    `json:"total_checked"`
	IssuesFound  int    `json:"issues_found"`
	GeneralNotes string `json:"general_notes"`
	SignedAt     string `json:"signed_at"`
}

// RoundHistoryResponse 历史记录列表响应
type RoundHistoryResponse struct {
	Records []RoundRecordView `json:"records"`
	Total   int64             `json:"total"`
}
