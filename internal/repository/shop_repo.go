package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopnav_dev_v1_202608/internal/model"
)

// ==================== ShopRepository 店铺仓库 ====================

// ShopCounts 店铺目录统计
type ShopCounts struct {
	ZoneCount    int64 `json:"zone_count"`
	ProductCount int64 `json:"product_count"`
	OfferCount   int64 `json:"offer_count"` // 仅统计 is_active 的活动
}

// ShopRepository 店铺仓库接口
type ShopRepository interface {
	Create(ctx context.Context, shop *model.Shop) error
	GetByID(ctx context.Context, id int64) (*model.Shop, error)

	// GetByIDAndAdmin 按 (id, admin_id) 查找，店主的所有权过滤在查询层强制执行
	GetByIDAndAdmin(ctx context.Context, id, adminID int64) (*model.Shop, error)

	// GetByAPIKey 精确匹配集成密钥，Path B 鉴权入口
	GetByAPIKey(ctx context.Context, apiKey string) (*model.Shop, error)

	ListByAdmin(ctx context.Context, adminID int64) ([]model.Shop, error)
	Update(ctx context.Context, shop *model.Shop) error
	DeleteByAdmin(ctx context.Context, id, adminID int64) (int64, error)

	// UpdateAPIKey 原子替换密钥；affected=0 表示 (id, admin_id) 不匹配
	UpdateAPIKey(ctx context.Context, id, adminID int64, apiKey string) (int64, error)

	// GetCounts 批量统计各店铺的分区/商品/活动数量
	GetCounts(ctx context.Context, shopIDs []int64) (map[int64]ShopCounts, error)
}

// ==================== 实现 ====================

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓库
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) Create(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopRepository) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).First(&shop, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) GetByIDAndAdmin(ctx context.Context, id, adminID int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminID).
		First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) GetByAPIKey(ctx context.Context, apiKey string) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) ListByAdmin(ctx context.Context, adminID int64) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("created_at DESC").
		Find(&shops).Error
	return shops, err
}

func (r *shopRepository) Update(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

func (r *shopRepository) DeleteByAdmin(ctx context.Context, id, adminID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminID).
		Delete(&model.Shop{})
	return res.RowsAffected, res.Error
}

func (r *shopRepository) UpdateAPIKey(ctx context.Context, id, adminID int64, apiKey string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Shop{}).
		Where("id = ? AND admin_id = ?", id, adminID).
		Update("api_key", apiKey)
	return res.RowsAffected, res.Error
}

func (r *shopRepository) GetCounts(ctx context.Context, shopIDs []int64) (map[int64]ShopCounts, error) {
	result := make(map[int64]ShopCounts, len(shopIDs))
	if len(shopIDs) == 0 {
		return result, nil
	}

	type row struct {
		ShopID int64
		N      int64
	}

	var zones []row
	if err := r.db.WithContext(ctx).Model(&model.Zone{}).
		Select("shop_id, COUNT(*) AS n").
		Where("shop_id IN ?", shopIDs).
		Group("shop_id").
		Scan(&zones).Error; err != nil {
		return nil, err
	}
	for _, z := range zones {
		c := result[z.ShopID]
		c.ZoneCount = z.N
		result[z.ShopID] = c
	}

	var products []row
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("shop_id, COUNT(*) AS n").
		Where("shop_id IN ?", shopIDs).
		Group("shop_id").
		Scan(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		c := result[p.ShopID]
		c.ProductCount = p.N
		result[p.ShopID] = c
	}

	var offers []row
	if err := r.db.WithContext(ctx).Model(&model.Offer{}).
		Select("shop_id, COUNT(*) AS n").
		Where("shop_id IN ? AND is_active = ?", shopIDs, true).
		Group("shop_id").
		Scan(&offers).Error; err != nil {
		return nil, err
	}
	for _, o := range offers {
		c := result[o.ShopID]
		c.OfferCount = o.N
		result[o.ShopID] = c
	}

	return result, nil
}
