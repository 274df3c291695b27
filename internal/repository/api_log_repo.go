package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shopnav_dev_v1_202608/internal/model"
)

// ==================== APICallLogRepository 集成调用日志仓储 ====================

// APICallLogRepository 集成调用日志仓储接口（只写不改）
type APICallLogRepository interface {
	Create(ctx context.Context, log *model.APICallLog) error
	ListByShop(ctx context.Context, shopID int64, limit int) ([]model.APICallLog, error)
	GetStats(ctx context.Context, shopID int64) (*APICallStats, error)
	PurgeBefore(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 统计结构 ====================

// APICallStats 集成调用统计
type APICallStats struct {
	TotalCalls   int64      `json:"total_calls"`
	SuccessCalls int64      `json:"success_calls"`
	FailedCalls  int64      `json:"failed_calls"`
	LastCallAt   *time.Time `json:"last_call_at"`
}

// ==================== 实现 ====================

type apiCallLogRepo struct {
	db *gorm.DB
}

// NewAPICallLogRepository 创建集成调用日志仓储
func NewAPICallLogRepository(db *gorm.DB) APICallLogRepository {
	return &apiCallLogRepo{db: db}
}

func (r *apiCallLogRepo) Create(ctx context.Context, log *model.APICallLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *apiCallLogRepo) ListByShop(ctx context.Context, shopID int64, limit int) ([]model.APICallLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []model.APICallLog
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *apiCallLogRepo) GetStats(ctx context.Context, shopID int64) (*APICallStats, error) {
	var stats APICallStats

	err := r.db.WithContext(ctx).Model(&model.APICallLog{}).
		Where("shop_id = ?", shopID).
		Select(`
			COUNT(*) AS total_calls,
			SUM(CASE WHEN status_code < 400 THEN 1 ELSE 0 END) AS success_calls,
			SUM(CASE WHEN status_code >= 400 THEN 1 ELSE 0 END) AS failed_calls,
			MAX(created_at) AS last_call_at
		`).Scan(&stats).Error

	return &stats, err
}

// PurgeBefore 物理删除指定时间之前的日志，留存期外的数据没有查询价值
func (r *apiCallLogRepo) PurgeBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("created_at < ?", before).
		Delete(&model.APICallLog{})
	return result.RowsAffected, result.Error
}
