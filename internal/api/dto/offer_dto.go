package dto

import "time"

// ==================== 优惠活动 ====================

// CreateOfferRequest 创建活动请求
type CreateOfferRequest struct {
	Title           string     `json:"title" binding:"required,max=150"`
	Description     string     `json:"description"`
	DiscountPercent *int       `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	IsActive        *bool      `json:"is_active"`
}

// UpdateOfferRequest 更新活动请求，nil 字段保持原值
type UpdateOfferRequest struct {
	Title           *string    `json:"title" binding:"omitempty,max=150"`
	Description     *string    `json:"description"`
	DiscountPercent *int       `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	IsActive        *bool      `json:"is_active"`
}
