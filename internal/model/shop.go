package model

// Shop 店铺，租户单元
// 所有目录数据 (Zone/Category/Product/Offer) 都挂在某一家店铺之下
type Shop struct {
	BaseModel
	AdminID int64 `gorm:"index;not null" json:"admin_id"` // 店主

	Name    string `gorm:"size:100;not null" json:"name"`
	Type    string `gorm:"size:50;default:'general'" json:"type"`
	Address string `gorm:"size:255" json:"address"`
	Logo    string `gorm:"size:255" json:"logo"`

	// 联系方式 / 营业时间（可选元数据）
	Phone     string `gorm:"size:30" json:"phone"`
	OpenHours string `gorm:"size:100" json:"open_hours"`

	// 外部集成密钥，snk_ 前缀的不透明随机串，支持轮换
	// 轮换即时生效，旧密钥没有宽限期
	APIKey string `gorm:"column:api_key;size:64;uniqueIndex;not null" json:"api_key"`

	// 关联关系
	Zones      []Zone     `gorm:"foreignKey:ShopID" json:"-"`
	Categories []Category `gorm:"foreignKey:ShopID" json:"-"`
	Products   []Product  `gorm:"foreignKey:ShopID" json:"-"`
	Offers     []Offer    `gorm:"foreignKey:ShopID" json:"-"`
	Workers    []Worker   `gorm:"foreignKey:ShopID" json:"-"`
}

func (Shop) TableName() string {
	return "shops"
}
