package dto

// ========== Auth 相关 DTO ==========

// LoginRequest 工牌登录请求
type LoginRequest struct {
	BadgeCode string `json:"badge_code" binding:"required"`
	PIN       string `json:"pin" binding:"required"`
}

// StaffSnapshot 登录后返回的员工概览
type StaffSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Role     string `json:"role"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int           `json:"expires_in"`
	Staff        StaffSnapshot `json:"staff"`
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse 刷新令牌响应
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}
