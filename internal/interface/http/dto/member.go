package dto

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Name     string `json:"name" binding:"required,min=2,max=50"`
}

// MemberResponse 会员响应（不包含密码）
type MemberResponse struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// LoginRequest HTTP层登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// MemberInfo 登录响应中的会员信息
type MemberInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Member       MemberInfo `json:"member"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresIn    int64      `json:"expires_in"`
}

// SetMemberActiveRequest 会员启停请求
type SetMemberActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}
