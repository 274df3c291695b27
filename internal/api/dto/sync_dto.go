package dto

// ==================== 外部同步（API Key 路由） ====================

// ProductSyncItem 商品同步条目
// Name 是匹配键（店铺内精确匹配）；其余字段缺省 (nil) 表示"不知道"，
// 更新时保持库内原值，绝不清空外部系统不了解的字段
type ProductSyncItem struct {
	Name         string   `json:"name"`
	ZoneName     *string  `json:"zone_name"`
	CategoryName *string  `json:"category_name"`
	Icon         *string  `json:"icon"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	InStock      *bool    `json:"in_stock"`
}

// ZoneSyncItem 分区同步条目
type ZoneSyncItem struct {
	Name        string  `json:"name"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

// SyncProductsRequest 商品批量同步请求
type SyncProductsRequest struct {
	Products []ProductSyncItem `json:"products" binding:"required"`
}

// SyncZonesRequest 分区批量同步请求
type SyncZonesRequest struct {
	Zones []ZoneSyncItem `json:"zones" binding:"required"`
}

// SyncResult 批量同步结果
// 调用级成功与条目级失败分开：errors > 0 时 HTTP 仍是 200，
// 单条失败只是数据质量信号，不代表调用失败
type SyncResult struct {
	Message string `json:"message"`
	Synced  int    `json:"synced"`
	Errors  int    `json:"errors"`
	Total   int    `json:"total"`
}
