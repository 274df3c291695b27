package model

import "time"

// ==================== 默认值常量 ====================

const (
	DefaultProductIcon   = "📦"
	DefaultZoneIcon      = "📍"
	DefaultZoneColor     = "#2196f3"
	DefaultCategoryIcon  = "📦"
	DefaultCategoryColor = "#666666"
)

// ==================== Zone 分区 ====================

// Zone 店内分区（货架区/通道），顾客地图上的导航单元
type Zone struct {
	BaseModel
	ShopID int64 `gorm:"index;not null" json:"shop_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Icon        string `gorm:"size:16;default:'📍'" json:"icon"`
	Color       string `gorm:"size:16;default:'#2196f3'" json:"color"`
	PositionRow *int   `json:"position_row"`
	PositionCol *int   `json:"position_col"`
	Photo       string `gorm:"size:255" json:"photo"`
	Description string `gorm:"type:text" json:"description"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`
}

func (Zone) TableName() string {
	return "zones"
}

// ==================== Category 分类 ====================

// Category 商品分类
type Category struct {
	BaseModel
	ShopID int64 `gorm:"index;not null" json:"shop_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Icon      string `gorm:"size:16;default:'📦'" json:"icon"`
	Color     string `gorm:"size:16;default:'#666666'" json:"color"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

func (Category) TableName() string {
	return "categories"
}

// ==================== Product 商品 ====================

// Product 商品
// ZoneID/CategoryID 可空且相互独立；删除分区只会把引用置空，不会级联删除商品。
// 两个引用必须与商品同店铺，写入层负责校验（库表不做结构性约束）。
type Product struct {
	BaseModel
	ShopID     int64  `gorm:"index;not null" json:"shop_id"`
	ZoneID     *int64 `gorm:"index" json:"zone_id"`
	CategoryID *int64 `gorm:"index" json:"category_id"`

	Name        string   `gorm:"size:150;not null;index" json:"name"`
	Icon        string   `gorm:"size:16;default:'📦'" json:"icon"`
	Photo       string   `gorm:"size:255" json:"photo"`
	Description string   `gorm:"type:text" json:"description"`
	Price       *float64 `gorm:"type:decimal(10,2)" json:"price"`
	InStock     bool     `gorm:"default:true" json:"in_stock"`

	// 关联关系
	Zone     *Zone     `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ==================== Offer 优惠活动 ====================

// Offer 优惠活动
// StartDate/EndDate 可空；顾客端只展示 IsActive 且在有效期内的活动
type Offer struct {
	BaseModel
	ShopID int64 `gorm:"index;not null" json:"shop_id"`

	Title           string     `gorm:"size:150;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Photo           string     `gorm:"size:255" json:"photo"`
	DiscountPercent *int       `json:"discount_percent"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
}

func (Offer) TableName() string {
	return "offers"
}
