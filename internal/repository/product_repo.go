package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopnav_dev_v1_202608/internal/model"
)

// ==================== ProductRepository 商品仓库 ====================

// ProductRepository 商品仓库接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByIDAndShop(ctx context.Context, id, shopID int64) (*model.Product, error)
	ListByShop(ctx context.Context, shopID int64) ([]model.Product, error)
	ListInStock(ctx context.Context, shopID int64) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	// FindByName 店铺范围内按名称精确匹配（同步 upsert 的匹配键）
	FindByName(ctx context.Context, shopID int64, name string) (*model.Product, error)

	// Search 顾客端搜索：仅在售商品，名称或描述包含关键词
	Search(ctx context.Context, shopID int64, keyword string) ([]model.Product, error)

	// CountByZone / CountByCategory 按分区/分类统计商品数
	CountByZone(ctx context.Context, shopID int64) (map[int64]int64, error)
	CountByCategory(ctx context.Context, shopID int64) (map[int64]int64, error)

	// ClearZoneRefs / ClearCategoryRefs 分区/分类删除时把商品引用置空
	ClearZoneRefs(ctx context.Context, zoneID int64) error
	ClearCategoryRefs(ctx context.Context, categoryID int64) error
}

// ==================== 实现 ====================

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDAndShop(ctx context.Context, id, shopID int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListByShop(ctx context.Context, shopID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Zone").
		Preload("Category").
		Where("shop_id = ?", shopID).
		Order("name").
		Find(&products).Error
	return products, err
}

func (r *productRepository) ListInStock(ctx context.Context, shopID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Zone").
		Preload("Category").
		Where("shop_id = ? AND in_stock = ?", shopID, true).
		Order("name").
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepository) FindByName(ctx context.Context, shopID int64, name string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND name = ?", shopID, name).
		Order("id").
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Search(ctx context.Context, shopID int64, keyword string) ([]model.Product, error) {
	var products []model.Product
	like := "%" + keyword + "%"
	err := r.db.WithContext(ctx).
		Preload("Zone").
		Preload("Category").
		Where("shop_id = ? AND in_stock = ?", shopID, true).
		Where("name LIKE ? OR description LIKE ?", like, like).
		Order("name").
		Find(&products).Error
	return products, err
}

func (r *productRepository) CountByZone(ctx context.Context, shopID int64) (map[int64]int64, error) {
	return r.countGrouped(ctx, shopID, "zone_id")
}

func (r *productRepository) CountByCategory(ctx context.Context, shopID int64) (map[int64]int64, error) {
	return r.countGrouped(ctx, shopID, "category_id")
}

func (r *productRepository) ClearZoneRefs(ctx context.Context, zoneID int64) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("zone_id = ?", zoneID).
		Update("zone_id", nil).Error
}

func (r *productRepository) ClearCategoryRefs(ctx context.Context, categoryID int64) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
}

func (r *productRepository) countGrouped(ctx context.Context, shopID int64, column string) (map[int64]int64, error) {
	type row struct {
		Key int64
		N   int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select(column+" AS key, COUNT(*) AS n").
		Where("shop_id = ? AND "+column+" IS NOT NULL", shopID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[int64]int64, len(rows))
	for _, r := range rows {
		result[r.Key] = r.N
	}
	return result, nil
}
