package model

// 角色常量
// 注意区分：这是请求主体的角色，不是店铺内的职位
const (
	RoleAdmin  = "admin"  // 店主，可管理名下所有店铺
	RoleWorker = "worker" // 员工，只能操作被分配的那一家店铺
)

// Admin 店主账号
// 邮箱在 admins 和 workers 两张表之间全局唯一（共用登录入口）
type Admin struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	Phone    string `gorm:"size:30" json:"phone"`

	// 关联关系
	Shops []Shop `gorm:"foreignKey:AdminID" json:"-"`
}

func (Admin) TableName() string {
	return "admins"
}
