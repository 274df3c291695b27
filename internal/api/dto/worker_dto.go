package dto

import "time"

// ==================== 员工管理 ====================

// CreateWorkerRequest 创建员工请求（仅店主）
type CreateWorkerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	Phone    string `json:"phone" binding:"max=30"`
}

// WorkerInfo 员工信息（不含密码哈希）
type WorkerInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	ShopID    int64     `json:"shop_id"`
	CreatedAt time.Time `json:"created_at"`
}
