package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopnav_dev_v1_202608/internal/model"
)

// ==================== ZoneRepository 分区仓库 ====================

// ZoneRepository 分区仓库接口
type ZoneRepository interface {
	Create(ctx context.Context, zone *model.Zone) error
	GetByID(ctx context.Context, id int64) (*model.Zone, error)
	GetByIDAndShop(ctx context.Context, id, shopID int64) (*model.Zone, error)
	ListByShop(ctx context.Context, shopID int64) ([]model.Zone, error)
	Update(ctx context.Context, zone *model.Zone) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	// FindByName 店铺范围内按名称精确匹配（同步 upsert 的匹配键）
	FindByName(ctx context.Context, shopID int64, name string) (*model.Zone, error)

	// FindByNameContains 店铺范围内模糊匹配，多条命中时取 id 最小的一条
	// 只用于解析"被引用"的分区名，不用于 upsert 本体
	FindByNameContains(ctx context.Context, shopID int64, name string) (*model.Zone, error)
}

// ==================== 实现 ====================

type zoneRepository struct {
	db *gorm.DB
}

// NewZoneRepository 创建分区仓库
func NewZoneRepository(db *gorm.DB) ZoneRepository {
	return &zoneRepository{db: db}
}

func (r *zoneRepository) Create(ctx context.Context, zone *model.Zone) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *zoneRepository) GetByID(ctx context.Context, id int64) (*model.Zone, error) {
	var zone model.Zone
	err := r.db.WithContext(ctx).First(&zone, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepository) GetByIDAndShop(ctx context.Context, id, shopID int64) (*model.Zone, error) {
	var zone model.Zone
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&zone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepository) ListByShop(ctx context.Context, shopID int64) ([]model.Zone, error) {
	var zones []model.Zone
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("sort_order, id").
		Find(&zones).Error
	return zones, err
}

func (r *zoneRepository) Update(ctx context.Context, zone *model.Zone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

func (r *zoneRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Zone{}).Where("id = ?", id).Updates(fields).Error
}

func (r *zoneRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Zone{}, id).Error
}

func (r *zoneRepository) FindByName(ctx context.Context, shopID int64, name string) (*model.Zone, error) {
	var zone model.Zone
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND name = ?", shopID, name).
		Order("id").
		First(&zone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}

func (r *zoneRepository) FindByNameContains(ctx context.Context, shopID int64, name string) (*model.Zone, error) {
	var zone model.Zone
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND name LIKE ?", shopID, "%"+name+"%").
		Order("id").
		First(&zone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}
