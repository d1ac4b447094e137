package dto

// ========== Animal 相关 DTO ==========

// ListAnimalsRequest 名册查询参数
type ListAnimalsRequest struct {
	Section         string `query:"section" binding:"required"`
	IncludeArchived bool   `query:"include_archived"`
}

// AnimalView 名册条目视图
type AnimalView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Section  string `json:"section"`
	Archived bool   `json:"archived"`
}

// ListAnimalsResponse 名册列表响应
type ListAnimalsResponse struct {
	Animals []AnimalView `json:"animals"`
}

// SectionView 分区元数据视图
type SectionView struct {
	Name    string `json:"name"`
	IsAvian bool   `json:"is_avian"`
}
