package model

import "gorm.io/datatypes"

// APICallLog 外部集成调用日志
// 只增不改：同步调用结束（无论成败）时写入一条，核心逻辑不会修改或删除
type APICallLog struct {
	BaseModel

	ShopID     int64  `gorm:"index;not null" json:"shop_id"`
	Endpoint   string `gorm:"size:100" json:"endpoint"`
	Method     string `gorm:"size:10" json:"method"`
	StatusCode int    `json:"status_code"`

	// 请求摘要，如 {"total":3,"synced":2,"errors":1}
	RequestBody datatypes.JSON `json:"request_body"`
}

func (APICallLog) TableName() string {
	return "api_call_logs"
}
