package dto

import "shopnav_dev_v1_202608/internal/model"

// ==================== 分区 ====================

// CreateZoneRequest 创建分区请求
type CreateZoneRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Icon        string `json:"icon" binding:"max=16"`
	Color       string `json:"color" binding:"max=16"`
	PositionRow *int   `json:"position_row"`
	PositionCol *int   `json:"position_col"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateZoneRequest 更新分区请求，nil 字段保持原值
type UpdateZoneRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Icon        *string `json:"icon" binding:"omitempty,max=16"`
	Color       *string `json:"color" binding:"omitempty,max=16"`
	PositionRow *int    `json:"position_row"`
	PositionCol *int    `json:"position_col"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

// ZoneInfo 分区 + 商品数
type ZoneInfo struct {
	model.Zone
	ProductCount int64 `json:"product_count"`
}

// ==================== 分类 ====================

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Icon      string `json:"icon" binding:"max=16"`
	Color     string `json:"color" binding:"max=16"`
	SortOrder int    `json:"sort_order"`
}

// UpdateCategoryRequest 更新分类请求，nil 字段保持原值
type UpdateCategoryRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Icon      *string `json:"icon" binding:"omitempty,max=16"`
	Color     *string `json:"color" binding:"omitempty,max=16"`
	SortOrder *int    `json:"sort_order"`
}

// CategoryInfo 分类 + 商品数
type CategoryInfo struct {
	model.Category
	ProductCount int64 `json:"product_count"`
}
