package dto

import "time"

// ==================== 注册 / 登录 ====================

// RegisterRequest 店主注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Phone    string `json:"phone" binding:"max=30"`
}

// LoginRequest 登录请求（店主与员工共用入口）
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 注册/登录响应
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	Role    string   `json:"role"`
	User    *Profile `json:"user"`
}

// ==================== 当前用户 ====================

// Profile 登录主体信息
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	ShopID    *int64    `json:"shop_id,omitempty"` // 仅员工
	CreatedAt time.Time `json:"created_at"`
}
