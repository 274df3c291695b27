package model

// Worker 员工账号
// 归属唯一店主 (AdminID) 与唯一店铺 (ShopID)。
// 员工的权限范围每次请求都从本表重新解析，绝不写进 Token，
// 这样改派/删除员工后旧 Token 立即失效于作用域层面。
type Worker struct {
	BaseModel
	AdminID int64 `gorm:"index;not null" json:"admin_id"`
	ShopID  int64 `gorm:"index;not null" json:"shop_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Phone    string `gorm:"size:30" json:"phone"`
}

func (Worker) TableName() string {
	return "workers"
}
