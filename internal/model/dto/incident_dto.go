package dto

// ========== Incident 相关 DTO ==========

// ListIncidentsQuery 事件列表查询参数
type ListIncidentsQuery struct {
	Date   string `query:"date"`
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// IncidentView 事件视图
type IncidentView struct {
	ID          string `json:"id"`
	AnimalID    string `json:"animal_id"`
	AnimalName  string `json:"animal_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Status      string `json:"status"`
	ReportedBy  string `json:"reported_by"`
}

// ListIncidentsResponse 事件列表响应
type ListIncidentsResponse struct {
	Incidents []IncidentView `json:"incidents"`
	Total     int64          `json:"total"`
}

// UpdateIncidentStatusRequest 事件状态更新请求
type UpdateIncidentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
