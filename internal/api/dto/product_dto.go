package dto

// ==================== 商品管理 ====================

// CreateProductRequest 创建商品请求
// ZoneID/CategoryID 可空且相互独立，必须与商品同店铺（写入层校验）
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,max=150"`
	ZoneID      *int64   `json:"zone_id"`
	CategoryID  *int64   `json:"category_id"`
	Icon        string   `json:"icon" binding:"max=16"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	InStock     *bool    `json:"in_stock"`
}

// UpdateProductRequest 更新商品请求，nil 字段保持原值
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=150"`
	ZoneID      *int64   `json:"zone_id"`
	CategoryID  *int64   `json:"category_id"`
	Icon        *string  `json:"icon" binding:"omitempty,max=16"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	InStock     *bool    `json:"in_stock"`
}

// ImportResult CSV 批量导入结果
type ImportResult struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Errors   int    `json:"errors"`
	Total    int    `json:"total"`
}
