package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopnav_dev_v1_202608/internal/model"
)

// ==================== WorkerRepository 员工仓库 ====================

// WorkerScope 员工的有效租户范围
// 每次请求从 workers 表现查，不缓存（改派后下一次请求立即生效）
type WorkerScope struct {
	AdminID int64
	ShopID  int64
}

// WorkerRepository 员工仓库接口
type WorkerRepository interface {
	Create(ctx context.Context, worker *model.Worker) error
	GetByID(ctx context.Context, id int64) (*model.Worker, error)
	GetByEmail(ctx context.Context, email string) (*model.Worker, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetScope 解析员工的归属店主与店铺，员工不存在时返回 (nil, nil)
	GetScope(ctx context.Context, workerID int64) (*WorkerScope, error)

	ListByShop(ctx context.Context, shopID, adminID int64) ([]model.Worker, error)
	UpdateShop(ctx context.Context, workerID, shopID int64) error
	DeleteByAdmin(ctx context.Context, id, adminID int64) (int64, error)
}

// ==================== 实现 ====================

type workerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository 创建员工仓库
func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &workerRepository{db: db}
}

func (r *workerRepository) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *workerRepository) GetByID(ctx context.Context, id int64) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).First(&worker, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepository) GetByEmail(ctx context.Context, email string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Worker{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *workerRepository) GetScope(ctx context.Context, workerID int64) (*WorkerScope, error) {
	var scope WorkerScope
	err := r.db.WithContext(ctx).Model(&model.Worker{}).
		Select("admin_id, shop_id").
		Where("id = ?", workerID).
		First(&scope).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &scope, nil
}

func (r *workerRepository) ListByShop(ctx context.Context, shopID, adminID int64) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND admin_id = ?", shopID, adminID).
		Order("created_at DESC").
		Find(&workers).Error
	return workers, err
}

func (r *workerRepository) UpdateShop(ctx context.Context, workerID, shopID int64) error {
	return r.db.WithContext(ctx).Model(&model.Worker{}).
		Where("id = ?", workerID).
		Update("shop_id", shopID).Error
}

func (r *workerRepository) DeleteByAdmin(ctx context.Context, id, adminID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND admin_id = ?", id, adminID).
		Delete(&model.Worker{})
	return res.RowsAffected, res.Error
}
