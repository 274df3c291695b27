package dto

import "shopnav_dev_v1_202608/internal/model"

// ==================== 店铺管理 ====================

// CreateShopRequest 创建店铺请求
type CreateShopRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Type      string `json:"type" binding:"max=50"`
	Address   string `json:"address" binding:"max=255"`
	Phone     string `json:"phone" binding:"max=30"`
	OpenHours string `json:"open_hours" binding:"max=100"`
}

// UpdateShopRequest 更新店铺请求，nil 字段保持原值
type UpdateShopRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Type      *string `json:"type" binding:"omitempty,max=50"`
	Address   *string `json:"address" binding:"omitempty,max=255"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	OpenHours *string `json:"open_hours" binding:"omitempty,max=100"`
}

// ShopInfo 店铺 + 目录统计
type ShopInfo struct {
	model.Shop
	ZoneCount    int64 `json:"zone_count"`
	ProductCount int64 `json:"product_count"`
	OfferCount   int64 `json:"offer_count"`
}

// QRResponse 顾客入口二维码信息
// 只返回目标 URL，二维码图片由前端生成
type QRResponse struct {
	URL  string      `json:"url"`
	Shop *model.Shop `json:"shop"`
}

// RotateKeyResponse 密钥轮换响应
type RotateKeyResponse struct {
	APIKey string `json:"api_key"`
}
