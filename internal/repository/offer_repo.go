package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shopnav_dev_v1_202608/internal/model"
)

// ==================== OfferRepository 优惠活动仓库 ====================

// OfferRepository 优惠活动仓库接口
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) error
	GetByID(ctx context.Context, id int64) (*model.Offer, error)
	GetByIDAndShop(ctx context.Context, id, shopID int64) (*model.Offer, error)
	ListByShop(ctx context.Context, shopID int64) ([]model.Offer, error)

	// ListActive 顾客端可见的活动：is_active 且在有效期内（日期为空视为不限）
	ListActive(ctx context.Context, shopID int64, now time.Time) ([]model.Offer, error)

	Update(ctx context.Context, offer *model.Offer) error
	Delete(ctx context.Context, id int64) error

	// DeactivateExpired 把已过 end_date 的活动置为停用，返回影响行数（定时任务用）
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// ==================== 实现 ====================

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository 创建优惠活动仓库
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *offerRepository) GetByID(ctx context.Context, id int64) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.WithContext(ctx).First(&offer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) GetByIDAndShop(ctx context.Context, id, shopID int64) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&offer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) ListByShop(ctx context.Context, shopID int64) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

func (r *offerRepository) ListActive(ctx context.Context, shopID int64, now time.Time) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

func (r *offerRepository) Update(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

func (r *offerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Offer{}, id).Error
}

func (r *offerRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}
