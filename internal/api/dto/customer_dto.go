package dto

import "shopnav_dev_v1_202608/internal/model"

// ==================== 顾客端（公开路由） ====================

// CustomerShopView 扫码后的店铺全量视图
// 只含在售商品与有效期内的活动
type CustomerShopView struct {
	Shop       *model.Shop      `json:"shop"`
	Zones      []ZoneInfo       `json:"zones"`
	Categories []model.Category `json:"categories"`
	Products   []model.Product  `json:"products"`
	Offers     []model.Offer    `json:"offers"`
}
